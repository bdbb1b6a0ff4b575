package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/SeakMengs/certgen/internal/auth"
	"github.com/SeakMengs/certgen/internal/constant"
	"github.com/SeakMengs/certgen/internal/model"
	"gorm.io/gorm"
)

const DefaultSeedPassword = "password123"

func seedColleges() []model.College {
	return []model.College{
		{
			Name:    "ABC Engineering College",
			Code:    "ABC",
			URL:     "https://abc-engineering.edu",
			Address: "123 Tech Street, Engineering City",
			Phone:   "+1234567890",
			Email:   "admin@abc-engineering.edu",
		},
		{
			Name:    "XYZ University",
			Code:    "XYZ",
			URL:     "https://xyz-university.edu",
			Address: "456 University Avenue, Academic Town",
			Phone:   "+1234567891",
			Email:   "admin@xyz-university.edu",
		},
		{
			Name:    "Tech Institute of Technology",
			Code:    "TIT",
			URL:     "https://tech-institute.edu",
			Address: "789 Innovation Drive, Tech Valley",
			Phone:   "+1234567892",
			Email:   "admin@tech-institute.edu",
		},
	}
}

func seedStudents(collegeId string) []model.Student {
	return []model.Student{
		{Name: "John Doe", RollNumber: "2021001", Email: "john.doe@student.edu", Phone: "+1234567800", Course: "Computer Science", Year: "3rd Year", Section: "A", Category: "participation", CollegeID: collegeId},
		{Name: "Jane Smith", RollNumber: "2021002", Email: "jane.smith@student.edu", Phone: "+1234567801", Course: "Computer Science", Year: "3rd Year", Section: "A", Category: "merit", CollegeID: collegeId},
		{Name: "Mike Johnson", RollNumber: "2021003", Email: "mike.johnson@student.edu", Phone: "+1234567802", Course: "Electronics", Year: "2nd Year", Section: "B", Category: "excellence", CollegeID: collegeId},
	}
}

// SeedDefaultData creates sample colleges, users and students when there are no
// colleges yet. It reports whether anything was created.
func (r *Repository) SeedDefaultData(ctx context.Context) (bool, error) {
	count, err := r.College.Count(ctx, nil)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := auth.HashPassword(DefaultSeedPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash seed password: %w", err)
	}

	err = r.College.withTx(r.DB, func(tx *gorm.DB) error {
		colleges := seedColleges()
		if err := r.College.CreateMany(ctx, tx, colleges); err != nil {
			return err
		}

		var users []model.User
		var students []model.Student
		for _, c := range colleges {
			domain := strings.ToLower(c.Code) + ".edu"
			users = append(users,
				model.User{
					Username:  "admin",
					Password:  hash,
					FullName:  c.Name + " Administrator",
					Email:     "admin@" + domain,
					Role:      constant.UserRoleAdmin,
					CollegeID: c.ID,
				},
				model.User{
					Username:  "staff1",
					Password:  hash,
					FullName:  c.Name + " Staff Member",
					Email:     "staff1@" + domain,
					Role:      constant.UserRoleStaff,
					CollegeID: c.ID,
				},
			)
			students = append(students, seedStudents(c.ID)...)
		}

		if err := r.User.CreateMany(ctx, tx, users); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()
		return translateError(tx.WithContext(ctx).Create(&students).Error)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// Models lists every table for AutoMigrate, parents first.
func Models() []any {
	return []any{
		&model.College{},
		&model.User{},
		&model.Student{},
		&model.DesignTemplate{},
	}
}
