package repository

import (
	"context"
	"fmt"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/model"
	"github.com/SeakMengs/certgen/internal/util"
	"gorm.io/gorm"
)

const (
	slugMaxLen      = 100
	slugMaxAttempts = 25
)

type TemplateRepository struct {
	*baseRepository
}

func (tr TemplateRepository) ListByCollege(ctx context.Context, tx *gorm.DB, collegeId string) ([]model.DesignTemplate, error) {
	tr.logger.Debugf("List templates of college: %s", collegeId)

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	templates := []model.DesignTemplate{}
	if err := db.WithContext(ctx).
		Where("college_id = ?", collegeId).
		Order("updated_at DESC").
		Find(&templates).Error; err != nil {
		return nil, translateError(err)
	}
	return templates, nil
}

func (tr TemplateRepository) GetById(ctx context.Context, tx *gorm.DB, collegeId, id string) (*model.DesignTemplate, error) {
	tr.logger.Debugf("Get template: %s of college: %s", id, collegeId)

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var t model.DesignTemplate
	if err := db.WithContext(ctx).Where("id = ? AND college_id = ?", id, collegeId).First(&t).Error; err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

// uniqueSlug appends -2, -3 and so on until the slug is free in the college.
// excludeId lets a template keep its own slug on update.
func (tr TemplateRepository) uniqueSlug(ctx context.Context, tx *gorm.DB, collegeId, name, excludeId string) (string, error) {
	base := util.Slugify(name, slugMaxLen)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	for i := 1; i <= slugMaxAttempts; i++ {
		slug := base
		if i > 1 {
			suffix := fmt.Sprintf("-%d", i)
			if len(base)+len(suffix) > slugMaxLen {
				slug = base[:slugMaxLen-len(suffix)]
			}
			slug += suffix
		}

		q := tx.WithContext(ctx).Model(&model.DesignTemplate{}).
			Where("college_id = ? AND slug = ?", collegeId, slug)
		if excludeId != "" {
			q = q.Where("id <> ?", excludeId)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", translateError(err)
		}
		if count == 0 {
			return slug, nil
		}
	}

	return "", fmt.Errorf("%w: no free slug for %q", ErrConflict, name)
}

func (tr TemplateRepository) Create(ctx context.Context, tx *gorm.DB, t *model.DesignTemplate) error {
	tr.logger.Debugf("Create template %q for college: %s", t.Name, t.CollegeID)

	db := tr.getDB(tx)
	return tr.withTx(db, func(tx *gorm.DB) error {
		slug, err := tr.uniqueSlug(ctx, tx, t.CollegeID, t.Name, "")
		if err != nil {
			return err
		}
		t.Slug = slug

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		return translateError(tx.WithContext(ctx).Create(t).Error)
	})
}

// Update replaces the document of a template. The college and creator never change.
func (tr TemplateRepository) Update(ctx context.Context, tx *gorm.DB, collegeId, id string, doc model.DesignTemplate) (*model.DesignTemplate, error) {
	tr.logger.Debugf("Update template: %s of college: %s", id, collegeId)

	db := tr.getDB(tx)
	var updated *model.DesignTemplate
	err := tr.withTx(db, func(tx *gorm.DB) error {
		current, err := tr.GetById(ctx, tx, collegeId, id)
		if err != nil {
			return err
		}

		slug := current.Slug
		if doc.Name != current.Name {
			if slug, err = tr.uniqueSlug(ctx, tx, collegeId, doc.Name, id); err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		if err := tx.WithContext(ctx).Model(current).Select("name", "slug", "description", "canvas", "elements", "frame").
			Updates(model.DesignTemplate{
				Name:        doc.Name,
				Slug:        slug,
				Description: doc.Description,
				Canvas:      doc.Canvas,
				Elements:    doc.Elements,
				Frame:       doc.Frame,
			}).Error; err != nil {
			return translateError(err)
		}

		updated, err = tr.GetById(ctx, tx, collegeId, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (tr TemplateRepository) Delete(ctx context.Context, tx *gorm.DB, collegeId, id string) error {
	tr.logger.Debugf("Delete template: %s of college: %s", id, collegeId)

	db := tr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("id = ? AND college_id = ?", id, collegeId).Delete(&model.DesignTemplate{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Duplicate copies a template within its college as "<name> (Copy)".
func (tr TemplateRepository) Duplicate(ctx context.Context, tx *gorm.DB, collegeId, id, userId string) (*model.DesignTemplate, error) {
	tr.logger.Debugf("Duplicate template: %s of college: %s", id, collegeId)

	db := tr.getDB(tx)
	var copied *model.DesignTemplate
	err := tr.withTx(db, func(tx *gorm.DB) error {
		src, err := tr.GetById(ctx, tx, collegeId, id)
		if err != nil {
			return err
		}

		copied = &model.DesignTemplate{
			Name:        src.Name + " (Copy)",
			Description: src.Description,
			Canvas:      src.Canvas,
			Elements:    src.Elements,
			Frame:       src.Frame,
			CollegeID:   collegeId,
		}
		if userId != "" {
			copied.CreatedByID = &userId
		}
		return tr.Create(ctx, tx, copied)
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}
