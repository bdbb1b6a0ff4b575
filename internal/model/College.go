package model

type College struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Code    string `gorm:"type:varchar(32);not null;uniqueIndex" json:"code"`
	URL     string `gorm:"type:text;not null" json:"url"`
	Address string `gorm:"type:text" json:"address,omitempty"`
	Phone   string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Email   string `gorm:"type:varchar(255)" json:"email,omitempty"`
}

func (c College) TableName() string {
	return "colleges"
}

// CollegeSummary is what the login page lists.
type CollegeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	URL  string `json:"url"`
}
