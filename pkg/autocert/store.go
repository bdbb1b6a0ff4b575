package autocert

import (
	"fmt"
	"sort"
)

// ParticipantStore holds the participants of one certificate run together with the
// row selection, the category registry and the chosen template.
type ParticipantStore struct {
	participants []Participant
	selected     map[int]struct{}
	categories   *CategoryRegistry
	template     *Template
}

func NewParticipantStore() *ParticipantStore {
	return &ParticipantStore{
		selected:   make(map[int]struct{}),
		categories: NewCategoryRegistry(),
	}
}

// Load parses CSV text and replaces the current participants. On error the store is unchanged.
func (s *ParticipantStore) Load(text string) error {
	participants, err := ParseParticipants(text)
	if err != nil {
		return err
	}
	s.LoadParticipants(participants)
	return nil
}

func (s *ParticipantStore) LoadParticipants(participants []Participant) {
	s.participants = append([]Participant(nil), participants...)
	s.selected = make(map[int]struct{})
}

func (s *ParticipantStore) Participants() []Participant {
	return append([]Participant(nil), s.participants...)
}

func (s *ParticipantStore) Len() int {
	return len(s.participants)
}

func (s *ParticipantStore) checkIndex(i int) error {
	if i < 0 || i >= len(s.participants) {
		return fmt.Errorf("%w: participant index %d out of range", ErrValidation, i)
	}
	return nil
}

func (s *ParticipantStore) Select(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.selected[i] = struct{}{}
	return nil
}

func (s *ParticipantStore) Deselect(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	delete(s.selected, i)
	return nil
}

// Toggle flips the selection of row i and reports whether it is now selected.
func (s *ParticipantStore) Toggle(i int) (bool, error) {
	if err := s.checkIndex(i); err != nil {
		return false, err
	}
	if _, ok := s.selected[i]; ok {
		delete(s.selected, i)
		return false, nil
	}
	s.selected[i] = struct{}{}
	return true, nil
}

func (s *ParticipantStore) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// AssignCategory sets category on every selected participant and clears the selection.
func (s *ParticipantStore) AssignCategory(category string) error {
	if len(s.selected) == 0 {
		return fmt.Errorf("%w: please select participants first", ErrValidation)
	}
	if !s.categories.Has(category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	for i := range s.selected {
		s.participants[i] = s.participants[i].WithCategory(category)
	}
	s.selected = make(map[int]struct{})
	return nil
}

func (s *ParticipantStore) AddCategory(name string) (Category, error) {
	return s.categories.Add(name)
}

func (s *ParticipantStore) Categories() []Category {
	return s.categories.List()
}

// SelectTemplate records the template choice. Unknown ids are rejected here; rendering
// itself still falls back to the modern template.
func (s *ParticipantStore) SelectTemplate(name string) error {
	t, ok := ParseTemplate(name)
	if !ok {
		return fmt.Errorf("%w: unknown template %q", ErrValidation, name)
	}
	s.template = &t
	return nil
}

func (s *ParticipantStore) Template() (Template, bool) {
	if s.template == nil {
		return FallbackTemplate, false
	}
	return *s.template, true
}

// ReadyToGenerate reports whether a certificate run may start.
func (s *ParticipantStore) ReadyToGenerate() error {
	if s.template == nil || len(s.participants) == 0 {
		return fmt.Errorf("%w: please select a template and ensure participants are loaded", ErrValidation)
	}
	return nil
}

// Reset returns the store to its initial state, dropping custom categories.
func (s *ParticipantStore) Reset() {
	s.participants = nil
	s.selected = make(map[int]struct{})
	s.template = nil
	s.categories.Reset()
}
