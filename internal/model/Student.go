package model

import "time"

const DefaultStudentCategory = "participation"

// Student roll numbers are unique per college. Empty roll numbers are exempt.
type Student struct {
	BaseModel
	Name       string   `gorm:"type:varchar(255);not null" json:"name"`
	RollNumber string   `gorm:"type:varchar(64);uniqueIndex:idx_students_roll_college,where:roll_number <> ''" json:"rollNumber,omitempty"`
	Email      string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone      string   `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Course     string   `gorm:"type:varchar(255)" json:"course,omitempty"`
	Year       string   `gorm:"type:varchar(32)" json:"year,omitempty"`
	Section    string   `gorm:"type:varchar(32)" json:"section,omitempty"`
	Category   string   `gorm:"type:varchar(64);not null;default:participation" json:"category"`
	CollegeID  string   `gorm:"type:text;not null;index;uniqueIndex:idx_students_roll_college,where:roll_number <> ''" json:"-"`
	College    *College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	AddedByID  *string  `gorm:"type:text" json:"-"`
	AddedBy    *User    `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (s Student) TableName() string {
	return "students"
}

// StudentResponse is the JSON shape of a student.
type StudentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	RollNumber string    `json:"rollNumber,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Course     string    `json:"course,omitempty"`
	Year       string    `json:"year,omitempty"`
	Section    string    `json:"section,omitempty"`
	Category   string    `json:"category"`
	AddedBy    *UserRef  `json:"addedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s Student) ToResponse() StudentResponse {
	return StudentResponse{
		ID:         s.ID,
		Name:       s.Name,
		RollNumber: s.RollNumber,
		Email:      s.Email,
		Phone:      s.Phone,
		Course:     s.Course,
		Year:       s.Year,
		Section:    s.Section,
		Category:   s.Category,
		AddedBy:    s.AddedBy.Ref(),
		CreatedAt:  s.CreatedAt,
	}
}
