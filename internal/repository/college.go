package repository

import (
	"context"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/model"
	"gorm.io/gorm"
)

type CollegeRepository struct {
	*baseRepository
}

func (cr CollegeRepository) List(ctx context.Context, tx *gorm.DB) ([]model.CollegeSummary, error) {
	cr.logger.Debug("List colleges")

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	colleges := []model.CollegeSummary{}
	if err := db.WithContext(ctx).Model(&model.College{}).
		Select("id", "name", "code", "url").
		Order("name ASC").
		Scan(&colleges).Error; err != nil {
		return nil, translateError(err)
	}

	return colleges, nil
}

func (cr CollegeRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.College, error) {
	cr.logger.Debugf("Get college by id: %s", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var college model.College
	if err := db.WithContext(ctx).Where("id = ?", id).First(&college).Error; err != nil {
		return nil, translateError(err)
	}

	return &college, nil
}

func (cr CollegeRepository) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var count int64
	if err := db.WithContext(ctx).Model(&model.College{}).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (cr CollegeRepository) CreateMany(ctx context.Context, tx *gorm.DB, colleges []model.College) error {
	cr.logger.Debugf("Create %d colleges", len(colleges))

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return translateError(db.WithContext(ctx).Create(&colleges).Error)
}
