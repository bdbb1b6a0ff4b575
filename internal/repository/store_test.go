package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/SeakMengs/certgen/internal/database/dbtest"
	"github.com/SeakMengs/certgen/internal/model"
	"gorm.io/datatypes"
)

// newSeededRepository returns a repository over a fresh sqlite store holding the
// default colleges, users and students, plus the college ids keyed by code.
func newSeededRepository(t *testing.T) (*Repository, map[string]string) {
	t.Helper()

	repo := NewRepository(dbtest.Open(t, Models()...), nil)
	seeded, err := repo.SeedDefaultData(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected an empty store to be seeded")
	}

	colleges, err := repo.College.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ids := map[string]string{}
	for _, c := range colleges {
		ids[c.Code] = c.ID
	}
	return repo, ids
}

func studentByRoll(t *testing.T, repo *Repository, collegeId, roll string) model.Student {
	t.Helper()

	students, err := repo.Student.ListByCollege(context.Background(), nil, collegeId)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range students {
		if s.RollNumber == roll {
			return s
		}
	}
	t.Fatalf("no student %s in college %s", roll, collegeId)
	return model.Student{}
}

func TestSeedDefaultData(t *testing.T) {
	repo, ids := newSeededRepository(t)
	ctx := context.Background()

	if len(ids) != 3 {
		t.Fatalf("expected 3 colleges, got %v", ids)
	}

	seeded, err := repo.SeedDefaultData(ctx)
	if err != nil || seeded {
		t.Errorf("expected second seed to be skipped, got seeded=%v err=%v", seeded, err)
	}

	colleges, err := repo.College.List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range colleges {
		names = append(names, c.Name)
	}
	want := []string{"ABC Engineering College", "Tech Institute of Technology", "XYZ University"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected colleges ordered by name %v, got %v", want, names)
	}

	for code, id := range ids {
		students, err := repo.Student.ListByCollege(ctx, nil, id)
		if err != nil {
			t.Fatal(err)
		}
		if len(students) != 3 {
			t.Errorf("college %s: expected 3 students, got %d", code, len(students))
		}
	}
}

func TestGetByUsernameAndCollege(t *testing.T) {
	repo, ids := newSeededRepository(t)
	ctx := context.Background()

	user, err := repo.User.GetByUsernameAndCollege(ctx, nil, "admin", ids["ABC"])
	if err != nil {
		t.Fatal(err)
	}
	if user.CollegeID != ids["ABC"] {
		t.Errorf("expected admin of ABC, got college %s", user.CollegeID)
	}

	tests := []struct {
		name      string
		username  string
		collegeId string
	}{
		{"unknown user", "nobody", ids["ABC"]},
		{"unknown college", "admin", "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.User.GetByUsernameAndCollege(ctx, nil, tt.username, tt.collegeId)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}

	other, err := repo.User.GetByUsernameAndCollege(ctx, nil, "admin", ids["XYZ"])
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == user.ID {
		t.Error("same username in another college must be another user")
	}
}

func TestStudentCreateRejectsDuplicateRollNumber(t *testing.T) {
	repo, ids := newSeededRepository(t)
	ctx := context.Background()

	err := repo.Student.Create(ctx, nil, &model.Student{Name: "Copy", RollNumber: "2021001", CollegeID: ids["ABC"]})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// roll numbers are only unique within a college
	s := &model.Student{Name: "Fresh", RollNumber: "2022001", CollegeID: ids["ABC"]}
	if err := repo.Student.Create(ctx, nil, s); err != nil {
		t.Fatal(err)
	}
	if s.ID == "" || s.Category != model.DefaultStudentCategory {
		t.Errorf("unexpected created student %+v", s)
	}
	if err := repo.Student.Create(ctx, nil, &model.Student{Name: "Fresh", RollNumber: "2022001", CollegeID: ids["XYZ"]}); err != nil {
		t.Errorf("expected same roll number in another college to be accepted, got %v", err)
	}

	// empty roll numbers never collide
	for i := 0; i < 2; i++ {
		if err := repo.Student.Create(ctx, nil, &model.Student{Name: "No Roll", CollegeID: ids["ABC"]}); err != nil {
			t.Errorf("expected student without roll number to be created, got %v", err)
		}
	}
}

func TestStudentBulkCreate(t *testing.T) {
	repo, ids := newSeededRepository(t)
	ctx := context.Background()

	result, err := repo.Student.BulkCreate(ctx, nil, ids["ABC"], []model.Student{
		{Name: "John Again", RollNumber: "2021001"},
		{Name: "New One", RollNumber: "2022001", Category: "merit"},
		{Name: "New One Again", RollNumber: "2022001"},
		{Name: "No Roll A"},
		{Name: "No Roll B"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Inserted != 3 {
		t.Errorf("expected 3 inserted, got %d", result.Inserted)
	}
	if want := []string{"2021001", "2022001"}; !reflect.DeepEqual(result.Duplicates, want) {
		t.Errorf("expected duplicates %v, got %v", want, result.Duplicates)
	}

	fresh := studentByRoll(t, repo, ids["ABC"], "2022001")
	if fresh.Name != "New One" || fresh.Category != "merit" {
		t.Errorf("expected first row of the batch to win, got %+v", fresh)
	}

	students, err := repo.Student.ListByCollege(ctx, nil, ids["ABC"])
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 6 {
		t.Errorf("expected 6 students, got %d", len(students))
	}

	empty, err := repo.Student.BulkCreate(ctx, nil, ids["ABC"], nil)
	if err != nil || empty.Inserted != 0 || len(empty.Duplicates) != 0 {
		t.Errorf("expected empty batch to be a no-op, got %+v err=%v", empty, err)
	}
}

func TestStudentScopedToCollege(t *testing.T) {
	repo, ids := newSeededRepository(t)
	ctx := context.Background()

	xyzStudent := studentByRoll(t, repo, ids["XYZ"], "2021002")
	name := "Renamed"

	if _, err := repo.Student.GetById(ctx, nil, ids["ABC"], xyzStudent.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Student.Update(ctx, nil, ids["ABC"], xyzStudent.ID, StudentUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Student.Delete(ctx, nil, ids["ABC"], xyzStudent.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}

	unchanged, err := repo.Student.GetById(ctx, nil, ids["XYZ"], xyzStudent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if unchanged.Name != xyzStudent.Name {
		t.Errorf("expected student of another college untouched, got %q", unchanged.Name)
	}

	updated, err := repo.Student.Update(ctx, nil, ids["XYZ"], xyzStudent.ID, StudentUpdate{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Renamed" || updated.RollNumber != "2021002" {
		t.Errorf("expected partial update, got %+v", updated)
	}

	if err := repo.Student.Delete(ctx, nil, ids["XYZ"], xyzStudent.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Student.Delete(ctx, nil, ids["XYZ"], xyzStudent.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected second delete to be ErrNotFound, got %v", err)
	}
}

func TestStudentUpdateToTakenRollNumber(t *testing.T) {
	repo, ids := newSeededRepository(t)

	s := studentByRoll(t, repo, ids["ABC"], "2021002")
	taken := "2021001"
	_, err := repo.Student.Update(context.Background(), nil, ids["ABC"], s.ID, StudentUpdate{RollNumber: &taken})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestTemplateSlugsAndDuplicate(t *testing.T) {
	repo, ids := newSeededRepository(t)
	ctx := context.Background()

	newTemplate := func() *model.DesignTemplate {
		return &model.DesignTemplate{
			Name:      "Merit Award",
			Canvas:    datatypes.JSON(`{"width":800,"height":600,"backgroundColor":"#ffffff"}`),
			Elements:  datatypes.JSON(`[]`),
			CollegeID: ids["ABC"],
		}
	}

	first, second := newTemplate(), newTemplate()
	if err := repo.Template.Create(ctx, nil, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Template.Create(ctx, nil, second); err != nil {
		t.Fatal(err)
	}
	if first.Slug != "merit-award" || second.Slug != "merit-award-2" {
		t.Errorf("unexpected slugs %q and %q", first.Slug, second.Slug)
	}

	other := newTemplate()
	other.CollegeID = ids["XYZ"]
	if err := repo.Template.Create(ctx, nil, other); err != nil {
		t.Fatal(err)
	}
	if other.Slug != "merit-award" {
		t.Errorf("expected slugs to be scoped to the college, got %q", other.Slug)
	}

	copied, err := repo.Template.Duplicate(ctx, nil, ids["ABC"], first.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if copied.Name != "Merit Award (Copy)" || copied.Slug != "merit-award-copy" {
		t.Errorf("unexpected copy %q / %q", copied.Name, copied.Slug)
	}

	if _, err := repo.Template.GetById(ctx, nil, ids["XYZ"], first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected template of another college to be hidden, got %v", err)
	}
	if err := repo.Template.Delete(ctx, nil, ids["XYZ"], first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected delete across colleges to be ErrNotFound, got %v", err)
	}
}
