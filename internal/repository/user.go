package repository

import (
	"context"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s", userId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).Preload("College").Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, translateError(err)
	}

	return &user, nil
}

// GetByUsernameAndCollege looks a user up inside one college only, so a username
// from another college is indistinguishable from a missing one.
func (ur UserRepository) GetByUsernameAndCollege(ctx context.Context, tx *gorm.DB, username, collegeId string) (*model.User, error) {
	ur.logger.Debugf("Get user by username: %s, college: %s", username, collegeId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user model.User
	if err := db.WithContext(ctx).
		Preload("College").
		Where("username = ? AND college_id = ?", username, collegeId).
		First(&user).Error; err != nil {
		return nil, translateError(err)
	}

	return &user, nil
}

func (ur UserRepository) CreateMany(ctx context.Context, tx *gorm.DB, users []model.User) error {
	ur.logger.Debugf("Create %d users", len(users))

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return translateError(db.WithContext(ctx).Create(&users).Error)
}
