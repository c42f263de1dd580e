package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/huddle-backend/internal/domain/user"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, u *user.User) (*user.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, uid string) (*user.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, uids []string) ([]*user.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*user.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*user.User, error)
	Search(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*user.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, u *user.User) (*user.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, uid string) (*user.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result user.User
	if err := transaction.WithContext(ctx).
		Where("id = ?", uid).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, uids []string) ([]*user.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*user.User
	if len(uids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", uids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*user.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result user.User
	if err := transaction.WithContext(ctx).
		Where("username = ?", username).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*user.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result user.User
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) Search(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*user.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var results []*user.User
	if err := transaction.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
