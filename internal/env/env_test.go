package env

import (
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("CERTGEN_TEST_STR", "hello")
	t.Setenv("CERTGEN_TEST_INT", " 42 ")
	t.Setenv("CERTGEN_TEST_BAD_INT", "x")
	t.Setenv("CERTGEN_TEST_BOOL", "true")
	t.Setenv("CERTGEN_TEST_DUR", "90s")

	if got := GetString("CERTGEN_TEST_STR", "d"); got != "hello" {
		t.Errorf("GetString = %q", got)
	}
	if got := GetString("CERTGEN_TEST_MISSING", "d"); got != "d" {
		t.Errorf("GetString fallback = %q", got)
	}
	if got := GetInt("CERTGEN_TEST_INT", 1); got != 42 {
		t.Errorf("GetInt = %d", got)
	}
	if got := GetInt("CERTGEN_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt fallback = %d", got)
	}
	if got := GetBool("CERTGEN_TEST_BOOL", false); !got {
		t.Errorf("GetBool = %v", got)
	}
	if got := GetDuration("CERTGEN_TEST_DUR", time.Second); got != 90*time.Second {
		t.Errorf("GetDuration = %v", got)
	}
}
