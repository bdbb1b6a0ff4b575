package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	*baseRepository
}

// StudentUpdate holds the fields of a partial update. Nil fields are left alone.
type StudentUpdate struct {
	Name       *string
	RollNumber *string
	Email      *string
	Phone      *string
	Course     *string
	Year       *string
	Section    *string
	Category   *string
}

func (u StudentUpdate) columns() map[string]any {
	out := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			out[col] = strings.TrimSpace(*v)
		}
	}
	set("name", u.Name)
	set("roll_number", u.RollNumber)
	set("email", u.Email)
	set("phone", u.Phone)
	set("course", u.Course)
	set("year", u.Year)
	set("section", u.Section)
	set("category", u.Category)
	return out
}

// BulkResult reports what a bulk insert did.
type BulkResult struct {
	Inserted int
	// Roll numbers skipped because they already exist in the college or earlier in the batch.
	Duplicates []string
}

func (sr StudentRepository) ListByCollege(ctx context.Context, tx *gorm.DB, collegeId string) ([]model.Student, error) {
	sr.logger.Debugf("List students of college: %s", collegeId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	students := []model.Student{}
	if err := db.WithContext(ctx).
		Preload("AddedBy").
		Where("college_id = ?", collegeId).
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		return nil, translateError(err)
	}

	return students, nil
}

func (sr StudentRepository) GetById(ctx context.Context, tx *gorm.DB, collegeId, id string) (*model.Student, error) {
	sr.logger.Debugf("Get student: %s of college: %s", id, collegeId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var student model.Student
	if err := db.WithContext(ctx).
		Preload("AddedBy").
		Where("id = ? AND college_id = ?", id, collegeId).
		First(&student).Error; err != nil {
		return nil, translateError(err)
	}

	return &student, nil
}

// ExistingRollNumbers returns which of rollNumbers are already taken in the college.
func (sr StudentRepository) ExistingRollNumbers(ctx context.Context, tx *gorm.DB, collegeId string, rollNumbers []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(rollNumbers) == 0 {
		return existing, nil
	}

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var found []string
	if err := db.WithContext(ctx).Model(&model.Student{}).
		Where("college_id = ? AND roll_number IN ?", collegeId, rollNumbers).
		Pluck("roll_number", &found).Error; err != nil {
		return nil, translateError(err)
	}

	for _, rn := range found {
		existing[rn] = true
	}
	return existing, nil
}

// Create inserts a student after checking the roll number is free in its college.
func (sr StudentRepository) Create(ctx context.Context, tx *gorm.DB, student *model.Student) error {
	sr.logger.Debugf("Create student with data: %+v", student)

	if student.Category == "" {
		student.Category = model.DefaultStudentCategory
	}

	db := sr.getDB(tx)
	return sr.withTx(db, func(tx *gorm.DB) error {
		if student.RollNumber != "" {
			existing, err := sr.ExistingRollNumbers(ctx, tx, student.CollegeID, []string{student.RollNumber})
			if err != nil {
				return err
			}
			if existing[student.RollNumber] {
				return fmt.Errorf("%w: student with roll number %q already exists", ErrConflict, student.RollNumber)
			}
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		if err := tx.WithContext(ctx).Create(student).Error; err != nil {
			return translateError(err)
		}
		return tx.WithContext(ctx).Preload("AddedBy").First(student, "id = ?", student.ID).Error
	})
}

// BulkCreate inserts students of one college, skipping roll numbers already present.
// Rows that still collide at insert time are dropped by the unique index.
func (sr StudentRepository) BulkCreate(ctx context.Context, tx *gorm.DB, collegeId string, students []model.Student) (BulkResult, error) {
	sr.logger.Debugf("Bulk create %d students for college: %s", len(students), collegeId)

	var result BulkResult
	if len(students) == 0 {
		return result, nil
	}

	rollNumbers := make([]string, 0, len(students))
	for _, s := range students {
		if s.RollNumber != "" {
			rollNumbers = append(rollNumbers, s.RollNumber)
		}
	}

	db := sr.getDB(tx)
	err := sr.withTx(db, func(tx *gorm.DB) error {
		existing, err := sr.ExistingRollNumbers(ctx, tx, collegeId, rollNumbers)
		if err != nil {
			return err
		}

		valid := make([]model.Student, 0, len(students))
		for _, s := range students {
			if s.RollNumber != "" && existing[s.RollNumber] {
				result.Duplicates = append(result.Duplicates, s.RollNumber)
				continue
			}
			if s.RollNumber != "" {
				existing[s.RollNumber] = true
			}
			s.CollegeID = collegeId
			if s.Category == "" {
				s.Category = model.DefaultStudentCategory
			}
			valid = append(valid, s)
		}

		if len(valid) == 0 {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&valid)
		if res.Error != nil {
			return translateError(res.Error)
		}
		result.Inserted = int(res.RowsAffected)
		return nil
	})

	return result, err
}

func (sr StudentRepository) Update(ctx context.Context, tx *gorm.DB, collegeId, id string, update StudentUpdate) (*model.Student, error) {
	sr.logger.Debugf("Update student: %s of college: %s", id, collegeId)

	columns := update.columns()
	db := sr.getDB(tx)

	var student *model.Student
	err := sr.withTx(db, func(tx *gorm.DB) error {
		if len(columns) > 0 {
			ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
			defer cancel()

			res := tx.WithContext(ctx).Model(&model.Student{}).
				Where("id = ? AND college_id = ?", id, collegeId).
				Updates(columns)
			if res.Error != nil {
				return translateError(res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		var err error
		student, err = sr.GetById(ctx, tx, collegeId, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return student, nil
}

func (sr StudentRepository) Delete(ctx context.Context, tx *gorm.DB, collegeId, id string) error {
	sr.logger.Debugf("Delete student: %s of college: %s", id, collegeId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("id = ? AND college_id = ?", id, collegeId).Delete(&model.Student{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
