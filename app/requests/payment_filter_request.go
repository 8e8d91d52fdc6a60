package requests

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"github.com/thedevsaddam/govalidator"

	"seth/app/models/payment"
	"seth/pkg/app"
	"seth/pkg/period"
)

// DateTimeLayout start_date / end_date 参数要求的固定格式（DD-MM-YYYY HH:MM:SS）
const DateTimeLayout = "02-01-2006 15:04:05"

// DefaultPageSize 默认每页行数
const DefaultPageSize = 10

// ListOptions 分页参数。Page == 0 表示未传 page，返回全部筛选结果
type ListOptions struct {
	Page  int
	Limit int
}

// ValidatePaymentFilter 校验并归一化账单筛选的查询参数。
//
// 所有参数均为可选，空字符串等价于未提供；不认识的参数一律忽略。
// 日期和数字参数格式错误时直接报错，不做静默回退。
// date（时间段名称）与 start_date/end_date 同时出现时，以 date 为准，
// 显式区间被忽略（规则固定写在这里，避免继承老系统的偶然顺序）。
func ValidatePaymentFilter(c *gin.Context) (payment.Filter, ListOptions, error) {
	var filter payment.Filter
	opts := ListOptions{Limit: DefaultPageSize}

	// 1. 基础格式校验
	rules := govalidator.MapData{
		"campaign": []string{"numeric"},
		"terminal": []string{"numeric"},
		"customer": []string{"numeric"},
		"game":     []string{"numeric"},
		"date":     []string{"in:" + strings.Join(period.Names, ",")},
		"page":     []string{"numeric"},
		"limit":    []string{"numeric"},
	}
	messages := govalidator.MapData{
		"campaign": []string{"numeric:campaign 必须是数字 ID"},
		"terminal": []string{"numeric:terminal 必须是数字 ID"},
		"customer": []string{"numeric:customer 必须是数字 ID"},
		"game":     []string{"numeric:game 必须是数字 ID"},
		"date":     []string{"in:date 不是合法的时间段名称"},
		"page":     []string{"numeric:page 必须是数字"},
		"limit":    []string{"numeric:limit 必须是数字"},
	}

	opt := govalidator.Options{
		Request:         c.Request,
		Rules:           rules,
		Messages:        messages,
		RequiredDefault: false,
	}
	if errs := govalidator.New(opt).Validate(); len(errs) > 0 {
		return filter, opts, ValidationError{Errors: errs}
	}

	// 2. 精确匹配类条件
	filter.CampaignID = queryID(c, "campaign")
	filter.TerminalID = queryID(c, "terminal")
	filter.CustomerID = queryID(c, "customer")
	filter.GameID = queryID(c, "game")
	filter.Status = c.Query("payment_status")
	filter.DonationFormula = c.Query("formula")
	filter.PaymentTerminal = c.Query("tpe")

	// 3. 显式时间区间
	if raw := c.Query("start_date"); raw != "" {
		start, err := ParseDateTime(raw)
		if err != nil {
			return filter, opts, fmt.Errorf("start_date 格式错误，要求 DD-MM-YYYY HH:MM:SS：%w", err)
		}
		filter.Start = &start
	}

	if raw := c.Query("end_date"); raw != "" {
		end, err := ParseDateTime(raw)
		if err != nil {
			return filter, opts, fmt.Errorf("end_date 格式错误，要求 DD-MM-YYYY HH:MM:SS：%w", err)
		}
		filter.End = &end
	}

	// 4. 时间段名称优先于显式区间
	if name := c.Query("date"); name != "" {
		start, end, err := period.Range(name, app.TimenowInTimezone())
		if err != nil {
			return filter, opts, err
		}
		filter.Start = &start
		filter.End = &end
	}

	// 5. 分页参数
	if raw := c.Query("page"); raw != "" {
		page := cast.ToInt(raw)
		if page < 1 {
			return filter, opts, fmt.Errorf("page 必须大于 0")
		}
		opts.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit := cast.ToInt(raw)
		if limit < 1 {
			return filter, opts, fmt.Errorf("limit 必须大于 0")
		}
		opts.Limit = limit
	}

	return filter, opts, nil
}

// ParseDateTime 解析固定格式的时间参数，分隔符 T 等价于空格
func ParseDateTime(value string) (time.Time, error) {
	normalized := strings.ReplaceAll(value, "T", " ")
	return time.ParseInLocation(DateTimeLayout, normalized, app.TimenowInTimezone().Location())
}

// queryID 读取数字 ID 类查询参数，空字符串返回 nil
func queryID(c *gin.Context, name string) *uint64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id := cast.ToUint64(raw)
	return &id
}
