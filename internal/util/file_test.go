package util

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAddUniquePrefixToFileName(t *testing.T) {
	filename := "testfile.txt"
	result := AddUniquePrefixToFileName(filename)

	if !strings.HasSuffix(result, "-testfile.txt") {
		t.Errorf("Expected filename to have unique prefix, got %s", result)
	}

	prefix := strings.Split(result, "-")[0]
	if len(prefix) == 0 {
		t.Errorf("Expected a non-empty unique prefix, got %s", prefix)
	}

	if got := AddUniquePrefixToFileName("../../etc/passwd"); strings.Contains(got, "..") {
		t.Errorf("Expected directories to be stripped, got %s", got)
	}
}

func TestSaveUploadPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	path, err := SaveUploadPath(dir, "students.csv")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, "-students.csv") {
		t.Errorf("unexpected path %s", path)
	}
}
