package util

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestGenerateErrorMessages(t *testing.T) {
	type body struct {
		Name   string `json:"name" validate:"required,strNotEmpty"`
		Code   string `json:"code" validate:"cmin=2,cmax=4"`
		Remark string `validate:"cmax=3"`
	}
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		body     body
		expected []ApiError
	}{
		{
			name:     "valid",
			body:     body{Name: "Jane", Code: " ab "},
			expected: nil,
		},
		{
			name: "whitespace name and short code",
			body: body{Name: "   ", Code: " a "},
			expected: []ApiError{
				{Field: "name", Message: "name must not be empty"},
				{Field: "code", Message: "code must be at least 2 characters"},
			},
		},
		{
			name: "missing name and long fields",
			body: body{Code: "abcde", Remark: "long"},
			expected: []ApiError{
				{Field: "name", Message: "name is required"},
				{Field: "code", Message: "code must be at most 4 characters"},
				{Field: "Remark", Message: "Remark must be at most 3 characters"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.body)
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := GenerateErrorMessages(err); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}

	got := GenerateErrorMessages(errors.New("boom"))
	if len(got) != 1 || got[0].Field != "" || got[0].Message != "boom" {
		t.Errorf("unexpected result %+v", got)
	}
}
