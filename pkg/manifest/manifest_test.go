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

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		"title": "Test Asset",
		"claim_generator": "make_test_images/0.1",
		"assertions": [
			{"label": "c2pa.actions", "data": {"actions": [{"action": "c2pa.created"}]}}
		]
	}`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if def.Title != "Test Asset" {
		t.Errorf("Title = %q, want %q", def.Title, "Test Asset")
	}
	if def.ClaimGenerator != "make_test_images/0.1" {
		t.Errorf("ClaimGenerator = %q", def.ClaimGenerator)
	}
	if len(def.Assertions) != 1 || def.Assertions[0].Label != "c2pa.actions" {
		t.Errorf("Unexpected assertions: %+v", def.Assertions)
	}
	if def.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", def.BaseDir, dir)
	}
}

func TestLoad_IngredientResolvedAgainstManifestDir(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "sources")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	ingredientPath := filepath.Join(srcDir, "parent.jpg")
	if err := os.WriteFile(ingredientPath, []byte{0xFF, 0xD8, 0xFF}, 0o644); err != nil {
		t.Fatalf("Failed to write ingredient: %v", err)
	}

	path := writeManifest(t, dir, `{
		"title": "With Parent",
		"ingredients_from_files": [
			{"title": "parent", "relationship": "parentOf", "file_path": "sources/parent.jpg"}
		]
	}`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(def.Ingredients) != 1 {
		t.Fatalf("Expected 1 ingredient, got %d", len(def.Ingredients))
	}
	ing := def.Ingredients[0]
	if ing.FilePath != ingredientPath {
		t.Errorf("Ingredient path = %q, want %q", ing.FilePath, ingredientPath)
	}
	if ing.Format != "image/jpeg" {
		t.Errorf("Ingredient format = %q, want image/jpeg", ing.Format)
	}
}

func TestLoad_MissingIngredientFile(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"ingredients_from_files": [
			{"relationship": "componentOf", "file_path": "gone.png"}
		]
	}`)

	_, err := Load(path)
	if !pipeline.IsType(err, pipeline.ErrTypeMissingFile) {
		t.Errorf("Expected MissingFile, got %v", err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{"title": `)

	_, err := Load(path)
	if !pipeline.IsType(err, pipeline.ErrTypeManifestParse) {
		t.Errorf("Expected ManifestParseError, got %v", err)
	}
}

func TestLoad_MissingManifestFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !pipeline.IsType(err, pipeline.ErrTypeMissingFile) {
		t.Errorf("Expected MissingFile, got %v", err)
	}
}

func TestLoad_InvalidRelationship(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "in.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write ingredient: %v", err)
	}
	path := writeManifest(t, dir, `{
		"ingredients_from_files": [
			{"relationship": "siblingOf", "file_path": "in.png"}
		]
	}`)

	_, err := Load(path)
	if !pipeline.IsType(err, pipeline.ErrTypeManifestParse) {
		t.Errorf("Expected ManifestParseError for invalid relationship, got %v", err)
	}
}

func TestLoad_AssertionWithoutLabel(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"assertions": [{"data": {"k": 1}}]
	}`)

	_, err := Load(path)
	if !pipeline.IsType(err, pipeline.ErrTypeManifestParse) {
		t.Errorf("Expected ManifestParseError for unlabeled assertion, got %v", err)
	}
}

func TestLoad_Thumbnail(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "thumb.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write thumbnail: %v", err)
	}
	path := writeManifest(t, dir, `{
		"thumbnail": {"identifier": "thumb.png"}
	}`)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if def.Thumbnail == nil {
		t.Fatal("Thumbnail was dropped")
	}
	if def.Thumbnail.Format != "image/png" {
		t.Errorf("Thumbnail format = %q, want image/png", def.Thumbnail.Format)
	}
	if def.Thumbnail.Identifier != filepath.Join(dir, "thumb.png") {
		t.Errorf("Thumbnail identifier = %q", def.Thumbnail.Identifier)
	}
}

func TestFormatForExtension(t *testing.T) {
	cases := map[string]string{
		".jpg":  "image/jpeg",
		"JPEG":  "image/jpeg",
		".png":  "image/png",
		".webp": "image/webp",
		".tif":  "image/tiff",
		".gif":  "image/gif",
		"bmp":   "image/bmp",
	}
	for ext, want := range cases {
		got, ok := FormatForExtension(ext)
		if !ok || got != want {
			t.Errorf("FormatForExtension(%q) = %q, %v; want %q", ext, got, ok, want)
		}
	}

	if _, ok := FormatForExtension(".exe"); ok {
		t.Error("FormatForExtension should reject unknown extensions")
	}
}
