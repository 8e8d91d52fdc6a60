package repositories

import (
	"context"

	"gorm.io/gorm"

	"seth/app/auth"
	"seth/app/models/terminal"
	"seth/pkg/database"
)

// TerminalFilter 终端机列表的筛选条件，零值表示不筛选
type TerminalFilter struct {
	IsActive   *bool
	IsOn       *bool
	IsPlaying  *bool
	CustomerID *uint64
}

// TerminalRepository 终端机仓库
type TerminalRepository struct {
	db *gorm.DB
}

// NewTerminalRepository 创建仓库实例
func NewTerminalRepository() *TerminalRepository {
	return &TerminalRepository{
		db: database.DB,
	}
}

// scoped 调用者可见的终端机集合（已归档的不可见）。
// 管理员可见全部，客户账号只能看到自家的
func (r *TerminalRepository) scoped(ctx context.Context, p *auth.Principal) (*gorm.DB, error) {
	query := r.db.WithContext(ctx).
		Model(&terminal.Terminal{}).
		Where("is_archived = ?", false)

	if p == nil {
		return nil, auth.ErrPermissionDenied
	}

	if p.IsStaff() {
		return query, nil
	}

	if p.IsCustomerUser() {
		return query.Where("customer_id = ?", p.Customer.ID), nil
	}

	return nil, auth.ErrPermissionDenied
}

// List 按条件列出调用者可见的终端机
func (r *TerminalRepository) List(ctx context.Context, p *auth.Principal, f TerminalFilter) ([]terminal.Terminal, error) {
	query, err := r.scoped(ctx, p)
	if err != nil {
		return nil, err
	}

	if f.IsActive != nil {
		query = query.Where("is_active = ?", *f.IsActive)
	}
	if f.IsOn != nil {
		query = query.Where("is_on = ?", *f.IsOn)
	}
	if f.IsPlaying != nil {
		query = query.Where("is_playing = ?", *f.IsPlaying)
	}
	if f.CustomerID != nil {
		query = query.Where("customer_id = ?", *f.CustomerID)
	}

	var terminals []terminal.Terminal
	err = query.Preload("Customer").Find(&terminals).Error
	return terminals, err
}

// ListOn 开机中的终端机，仪表盘用
func (r *TerminalRepository) ListOn(ctx context.Context, p *auth.Principal) ([]terminal.Terminal, error) {
	on := true
	return r.List(ctx, p, TerminalFilter{IsOn: &on})
}

// Count 调用者可见的终端机数量
func (r *TerminalRepository) Count(ctx context.Context, p *auth.Principal) (int64, error) {
	query, err := r.scoped(ctx, p)
	if err != nil {
		return 0, err
	}

	var count int64
	err = query.Count(&count).Error
	return count, err
}

// Get 按 ID 获取终端机
func (r *TerminalRepository) Get(ctx context.Context, id uint64) (*terminal.Terminal, error) {
	var t terminal.Terminal
	if err := r.db.WithContext(ctx).Preload("Customer").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByOwner 按登录账号获取终端机，设备端接口用
func (r *TerminalRepository) GetByOwner(ctx context.Context, ownerID uint64) (*terminal.Terminal, error) {
	var t terminal.Terminal
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Save 保存终端机
func (r *TerminalRepository) Save(ctx context.Context, t *terminal.Terminal) error {
	return r.db.WithContext(ctx).Save(t).Error
}
