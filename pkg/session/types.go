package session

import "time"

type College struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	URL     string `json:"url,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type CollegeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	College  CollegeRef `json:"college"`
}

type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type Student struct {
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

// StudentInput is the body of create and update calls. Empty fields are left out so
// an update only touches what is set.
type StudentInput struct {
	Name       string `json:"name,omitempty"`
	RollNumber string `json:"rollNumber,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Course     string `json:"course,omitempty"`
	Year       string `json:"year,omitempty"`
	Section    string `json:"section,omitempty"`
	Category   string `json:"category,omitempty"`
}

type Duplicates struct {
	Count       int      `json:"count"`
	RollNumbers []string `json:"rollNumbers"`
}

type BulkUploadResult struct {
	Message    string      `json:"message"`
	Count      int         `json:"count"`
	Total      int         `json:"total"`
	Errors     []string    `json:"errors"`
	Duplicates *Duplicates `json:"duplicates,omitempty"`
}
