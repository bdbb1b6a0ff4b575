package model

import "gorm.io/datatypes"

// DesignTemplate is a designer document saved for a college.
type DesignTemplate struct {
	BaseModel
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string         `gorm:"type:varchar(120);not null;uniqueIndex:idx_templates_slug_college" json:"slug"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Canvas      datatypes.JSON `gorm:"not null" json:"canvas"`
	Elements    datatypes.JSON `gorm:"not null" json:"elements"`
	Frame       string         `gorm:"type:varchar(32)" json:"frame,omitempty"`
	CollegeID   string         `gorm:"type:text;not null;index;uniqueIndex:idx_templates_slug_college" json:"-"`
	College     *College       `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID *string        `gorm:"type:text" json:"-"`
	CreatedBy   *User          `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (t DesignTemplate) TableName() string {
	return "design_templates"
}
