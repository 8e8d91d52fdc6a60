package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"seth/app/auth"
	"seth/app/models/session"
	"seth/pkg/database"
)

// SessionRepository 游戏会话仓库，只做仪表盘和终端机统计需要的聚合
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建仓库实例
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		db: database.DB,
	}
}

// scoped 调用者可见的会话集合，与账单的租户范围规则一致
func (r *SessionRepository) scoped(ctx context.Context, p *auth.Principal) (*gorm.DB, error) {
	query := r.db.WithContext(ctx).
		Model(&session.Session{}).
		Joins("LEFT JOIN terminals ON terminals.id = sessions.terminal_id")

	if p == nil {
		return nil, auth.ErrPermissionDenied
	}

	if p.IsStaff() {
		return query, nil
	}

	if p.IsCustomerUser() {
		return query.Where("terminals.customer_id = ?", p.Customer.ID), nil
	}

	return nil, auth.ErrPermissionDenied
}

// CountStartedBetween 时间窗口内开始的会话数，仪表盘当作「捐赠者人数」
func (r *SessionRepository) CountStartedBetween(ctx context.Context, p *auth.Principal, start, end time.Time) (int64, error) {
	query, err := r.scoped(ctx, p)
	if err != nil {
		return 0, err
	}

	var count int64
	err = query.
		Where("sessions.start_time >= ? AND sessions.start_time < ?", start, end).
		Count(&count).Error
	return count, err
}

// TotalGameSeconds 调用者可见会话的游戏总时长（秒）
func (r *SessionRepository) TotalGameSeconds(ctx context.Context, p *auth.Principal) (int64, error) {
	query, err := r.scoped(ctx, p)
	if err != nil {
		return 0, err
	}

	var total int64
	err = query.
		Select("COALESCE(SUM(sessions.timesession), 0)").
		Scan(&total).Error
	return total, err
}

// AvgSeconds 终端机的平均会话时长（秒），global 为 true 时取整体时长
func (r *SessionRepository) AvgSeconds(ctx context.Context, terminalID uint64, global bool) (float64, error) {
	column := "timesession"
	if global {
		column = "timesession_global"
	}

	var avg float64
	err := r.db.WithContext(ctx).
		Model(&session.Session{}).
		Where("terminal_id = ?", terminalID).
		Select("COALESCE(AVG(" + column + "), 0)").
		Scan(&avg).Error
	return avg, err
}
