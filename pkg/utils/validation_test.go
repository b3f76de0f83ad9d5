// Copyright 2025 The C2PA Testfile Maker Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asset.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := ValidateFileExists("asset path", path); err != nil {
		t.Errorf("Expected nil for existing file, got %v", err)
	}

	err := ValidateFileExists("asset path", "")
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Errorf("Expected required error for empty path, got %v", err)
	}

	err = ValidateFileExists("asset path", filepath.Join(dir, "gone.png"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	err = ValidateFileExists("asset path", dir)
	if err == nil || !strings.Contains(err.Error(), "directory") {
		t.Errorf("Expected directory error, got %v", err)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"ab", "**"},
		{"abc", "***"},
		{"secret", "s****t"},
		{"p@ssw0rd!", "p*******!"},
	}

	for _, tt := range tests {
		if got := MaskSecret(tt.input); got != tt.expected {
			t.Errorf("MaskSecret(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
