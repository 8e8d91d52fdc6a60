package repositories

import (
	"context"

	"gorm.io/gorm"

	"seth/app/auth"
	"seth/app/models/campaign"
	"seth/app/models/customer"
	"seth/app/models/game"
	"seth/pkg/database"
)

// CatalogRepository 筛选下拉框需要的目录数据：活动、游戏、客户
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建仓库实例
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		db: database.DB,
	}
}

// Campaigns 未归档的募捐活动
func (r *CatalogRepository) Campaigns(ctx context.Context) ([]campaign.Campaign, error) {
	var campaigns []campaign.Campaign
	err := r.db.WithContext(ctx).
		Where("is_archived = ?", false).
		Order("name").
		Find(&campaigns).Error
	return campaigns, err
}

// Games 游戏目录
func (r *CatalogRepository) Games(ctx context.Context) ([]game.Game, error) {
	var games []game.Game
	err := r.db.WithContext(ctx).Order("name").Find(&games).Error
	return games, err
}

// Customers 未归档的客户，仅管理员可见
func (r *CatalogRepository) Customers(ctx context.Context, p *auth.Principal) ([]customer.Customer, error) {
	if p == nil || !p.IsStaff() {
		return nil, auth.ErrPermissionDenied
	}

	var customers []customer.Customer
	err := r.db.WithContext(ctx).
		Where("is_archived = ?", false).
		Order("company").
		Find(&customers).Error
	return customers, err
}
