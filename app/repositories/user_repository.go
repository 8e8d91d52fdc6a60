package repositories

import (
	"context"

	"gorm.io/gorm"

	"seth/app/models/user"
	"seth/pkg/database"
)

// UserRepository 用户仓库，只服务登录
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建仓库实例
func NewUserRepository() *UserRepository {
	return &UserRepository{
		db: database.DB,
	}
}

// GetByUsername 按用户名查找用户
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
