package requests

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seth/pkg/period"
)

func testContext(t *testing.T, query string) *gin.Context {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/payment/filtered?"+query, nil)
	return c
}

func TestValidatePaymentFilterDefaults(t *testing.T) {
	c := testContext(t, "")

	filter, opts, err := ValidatePaymentFilter(c)
	require.NoError(t, err)

	assert.Nil(t, filter.CampaignID)
	assert.Nil(t, filter.TerminalID)
	assert.Nil(t, filter.CustomerID)
	assert.Nil(t, filter.GameID)
	assert.Empty(t, filter.Status)
	assert.Nil(t, filter.Start)
	assert.Nil(t, filter.End)

	// 未传 page 表示不分页
	assert.Equal(t, 0, opts.Page)
	assert.Equal(t, DefaultPageSize, opts.Limit)
}

func TestValidatePaymentFilterCriteria(t *testing.T) {
	c := testContext(t, "campaign=3&terminal=7&payment_status=Accepted&formula=Partage&tpe=TPE-001")

	filter, _, err := ValidatePaymentFilter(c)
	require.NoError(t, err)

	require.NotNil(t, filter.CampaignID)
	assert.Equal(t, uint64(3), *filter.CampaignID)
	require.NotNil(t, filter.TerminalID)
	assert.Equal(t, uint64(7), *filter.TerminalID)
	assert.Equal(t, "Accepted", filter.Status)
	assert.Equal(t, "Partage", filter.DonationFormula)
	assert.Equal(t, "TPE-001", filter.PaymentTerminal)
}

func TestValidatePaymentFilterDates(t *testing.T) {
	t.Run("DD-MM-YYYY 格式", func(t *testing.T) {
		c := testContext(t, "start_date=01-02-2024+13%3A30%3A00")

		filter, _, err := ValidatePaymentFilter(c)
		require.NoError(t, err)
		require.NotNil(t, filter.Start)
		assert.Equal(t, time.February, filter.Start.Month())
		assert.Equal(t, 1, filter.Start.Day())
		assert.Equal(t, 13, filter.Start.Hour())
	})

	t.Run("T 分隔符等价于空格", func(t *testing.T) {
		c := testContext(t, "end_date=15-03-2024T08%3A00%3A00")

		filter, _, err := ValidatePaymentFilter(c)
		require.NoError(t, err)
		require.NotNil(t, filter.End)
		assert.Equal(t, 15, filter.End.Day())
		assert.Equal(t, 8, filter.End.Hour())
	})

	t.Run("格式错误直接报错", func(t *testing.T) {
		c := testContext(t, "start_date=2024-02-01+13%3A30%3A00")

		_, _, err := ValidatePaymentFilter(c)
		assert.Error(t, err)
	})
}

func TestValidatePaymentFilterBucketOverridesRange(t *testing.T) {
	// 同时传时间段名称和显式区间时，以名称为准
	c := testContext(t, "date="+period.Today+"&start_date=01-01-2020+00%3A00%3A00&end_date=02-01-2020+00%3A00%3A00")

	filter, _, err := ValidatePaymentFilter(c)
	require.NoError(t, err)

	require.NotNil(t, filter.Start)
	require.NotNil(t, filter.End)
	assert.NotEqual(t, 2020, filter.Start.Year())
	assert.Equal(t, 24*time.Hour, filter.End.Sub(*filter.Start))
}

func TestValidatePaymentFilterBadBucketName(t *testing.T) {
	c := testContext(t, "date=NotAPeriod")

	_, _, err := ValidatePaymentFilter(c)
	require.Error(t, err)
	assert.IsType(t, ValidationError{}, err)
}

func TestValidatePaymentFilterPagination(t *testing.T) {
	t.Run("page 和 limit", func(t *testing.T) {
		c := testContext(t, "page=3&limit=25")

		_, opts, err := ValidatePaymentFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 3, opts.Page)
		assert.Equal(t, 25, opts.Limit)
	})

	t.Run("page 非数字被拒绝", func(t *testing.T) {
		c := testContext(t, "page=abc")

		_, _, err := ValidatePaymentFilter(c)
		assert.Error(t, err)
	})

	t.Run("page 为零被拒绝", func(t *testing.T) {
		c := testContext(t, "page=0")

		_, _, err := ValidatePaymentFilter(c)
		assert.Error(t, err)
	})
}
