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

// Package utils holds small shared helpers for path validation and
// log-safe formatting.
package utils

import (
	"fmt"
	"os"
	"strings"
)

// ValidateFileExists validates that a path exists and is a regular file.
// Returns nil on success, or an error naming the field if the path is
// empty, does not exist, or is a directory.
func ValidateFileExists(fieldName, path string) error {
	if path == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %q does not exist", fieldName, path)
		}
		return fmt.Errorf("checking %s %q: %w", fieldName, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s %q is a directory, expected file", fieldName, path)
	}
	return nil
}

// MaskSecret replaces all but the first and last character of a secret
// with asterisks, for safe inclusion in log output. Secrets of three
// characters or fewer are fully masked.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 3 {
		return strings.Repeat("*", len(s))
	}
	return s[:1] + strings.Repeat("*", len(s)-2) + s[len(s)-1:]
}
