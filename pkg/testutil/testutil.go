// Package testutil provides helpers shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// ReadFile reads a file and fails the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateRulesTree builds a small but representative rules repository
// under root and returns it. Layout:
//
//	common/general.mdc
//	backend/api-standards.md
//	backend/common/security.mdc
//	backend/python/style.mdc
//	backend/python/fastapi/routing.mdc
//	frontend/javascript/react/components.mdc
func CreateRulesTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	CreateFile(t, root, "common/general.mdc", "---\ndescription: General conventions\nalwaysApply: true\n---\n# General\n")
	CreateFile(t, root, "backend/api-standards.md", "# API standards\n")
	CreateFile(t, root, "backend/common/security.mdc", "---\ndescription: Security baseline\n---\n# Security\n")
	CreateFile(t, root, "backend/python/style.mdc", "---\ndescription: Python style\nglobs: \"*.py\"\n---\n# Python\n")
	CreateFile(t, root, "backend/python/fastapi/routing.mdc", "---\ndescription: FastAPI routing\nglobs:\n  - \"*.py\"\n---\n# FastAPI\n")
	CreateFile(t, root, "frontend/javascript/react/components.mdc", "# React components\n")
	CreateFile(t, root, "frontend/javascript/style.md", "# JS style\n")
	return root
}
