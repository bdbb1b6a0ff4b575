package autocert

import (
	"fmt"
	"time"
)

const CollegeEventName = "College Event"

// StudentRecord is the subset of a stored student that ends up on a certificate.
type StudentRecord struct {
	Name       string
	RollNumber string
	Email      string
	Phone      string
	Course     string
	Year       string
	Section    string
	Category   string
}

var studentColumns = []string{"name", "rollnumber", "email", "phone", "course", "year", "section", "category", "event", "date"}

// StudentParticipants converts stored students into participants for a college event
// dated now. Students without a name are skipped.
func StudentParticipants(students []StudentRecord, now time.Time) []Participant {
	date := now.Format(DateLayout)
	out := make([]Participant, 0, len(students))
	for _, s := range students {
		fields := map[string]string{
			"name":       s.Name,
			"rollnumber": s.RollNumber,
			"email":      s.Email,
			"phone":      s.Phone,
			"course":     s.Course,
			"year":       s.Year,
			"section":    s.Section,
			"category":   s.Category,
			"event":      CollegeEventName,
			"date":       date,
		}
		p, err := NewParticipant(fields, studentColumns)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LoadStudents replaces the participants with the given college students.
func (s *ParticipantStore) LoadStudents(students []StudentRecord, now time.Time) error {
	participants := StudentParticipants(students, now)
	if len(participants) == 0 {
		return fmt.Errorf("%w: no students found in your college database, please add students first", ErrValidation)
	}
	s.LoadParticipants(participants)
	return nil
}
