package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func TestBuildResponseFailed(t *testing.T) {
	type body struct {
		Name string `validate:"strNotEmpty"`
	}
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatal(err)
	}
	verr := v.Struct(body{Name: "   "})

	tests := []struct {
		name       string
		err        any
		expose     bool
		wantDetail string
		wantErrors int
	}{
		{"nil", nil, true, "", 0},
		{"string", "guidance", false, "guidance", 0},
		{"exposed error", errors.New("bad csv"), true, "bad csv", 0},
		{"hidden error", errors.New("connection refused"), false, "", 0},
		{"validation", verr, false, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := BuildResponseFailed("failed", tt.err, tt.expose)
			if res.Error != "failed" || res.Details != tt.wantDetail || len(res.Errors) != tt.wantErrors {
				t.Errorf("unexpected response %+v", res)
			}
		})
	}
}

func TestResponseFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	ResponseFailed(ctx, http.StatusNotFound, "Student not found", nil)

	if w.Code != http.StatusNotFound || !ctx.IsAborted() {
		t.Fatalf("expected aborted 404, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["error"] != "Student not found" {
		t.Errorf("unexpected body %v", got)
	}
}
