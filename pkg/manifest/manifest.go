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

// Package manifest loads provenance manifest definitions.
//
// A definition file is JSON whose schema is owned by the provenance
// manifest format, not by this tool. The loader resolves relative asset
// references (ingredients, thumbnails) against the manifest file's own
// directory, so definition files stay portable regardless of where the
// tool is invoked from.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
)

// Assertion is a single structured claim within a manifest, e.g. an action
// performed or creative-work metadata. The data payload is opaque to this
// tool and passed through to the engine unmodified.
type Assertion struct {
	Label string          `json:"label"`
	Data  json.RawMessage `json:"data"`
}

// Ingredient references a source asset that contributed to the signed
// asset. FilePath is resolved against the manifest's directory at load
// time; Format is inferred from the file extension.
type Ingredient struct {
	Title        string `json:"title,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	FilePath     string `json:"file_path"`
	Format       string `json:"-"`
}

// Thumbnail references a preview image for the manifest.
type Thumbnail struct {
	Format     string `json:"format,omitempty"`
	Identifier string `json:"identifier"`
}

// Definition is the structured provenance content of a manifest file,
// read-only after loading.
type Definition struct {
	Title          string       `json:"title,omitempty"`
	ClaimGenerator string       `json:"claim_generator,omitempty"`
	Assertions     []Assertion  `json:"assertions,omitempty"`
	Ingredients    []Ingredient `json:"ingredients_from_files,omitempty"`
	Thumbnail      *Thumbnail   `json:"thumbnail,omitempty"`

	// BaseDir is the directory the manifest file was loaded from. All
	// relative references inside the definition are resolved against it.
	BaseDir string `json:"-"`
}

// Relationship values accepted for ingredients.
const (
	RelationshipParentOf    = "parentOf"
	RelationshipComponentOf = "componentOf"
)

// Load reads and parses a manifest definition file.
//
// Fails with MissingFile if the manifest itself or any referenced asset
// is unreadable, or ManifestParseError if the structure is invalid.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
			path, "cannot read manifest file", err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
			path, "manifest is not valid JSON", err)
	}

	baseDir := filepath.Dir(path)
	def.BaseDir = baseDir

	for i, a := range def.Assertions {
		if a.Label == "" {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
				path, fmt.Sprintf("assertion %d has no label", i), nil)
		}
		if len(a.Data) == 0 {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
				path, fmt.Sprintf("assertion %q has no data", a.Label), nil)
		}
	}

	for i := range def.Ingredients {
		ing := &def.Ingredients[i]
		if ing.FilePath == "" {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
				path, fmt.Sprintf("ingredient %d has no file_path", i), nil)
		}
		switch ing.Relationship {
		case "", RelationshipParentOf, RelationshipComponentOf:
		default:
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
				path, fmt.Sprintf("ingredient %q has invalid relationship %q", ing.FilePath, ing.Relationship), nil)
		}

		resolved := resolve(baseDir, ing.FilePath)
		if _, err := os.Stat(resolved); err != nil {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
				resolved, "ingredient file not found", err)
		}
		format, ok := FormatForExtension(filepath.Ext(resolved))
		if !ok {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
				resolved, "unsupported ingredient file format", nil)
		}
		ing.FilePath = resolved
		ing.Format = format
	}

	if def.Thumbnail != nil {
		if def.Thumbnail.Identifier == "" {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
				path, "thumbnail has no identifier", nil)
		}
		resolved := resolve(baseDir, def.Thumbnail.Identifier)
		if _, err := os.Stat(resolved); err != nil {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
				resolved, "thumbnail file not found", err)
		}
		def.Thumbnail.Identifier = resolved
		if def.Thumbnail.Format == "" {
			format, ok := FormatForExtension(filepath.Ext(resolved))
			if !ok {
				return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeManifestParse,
					resolved, "unsupported thumbnail file format", nil)
			}
			def.Thumbnail.Format = format
		}
	}

	return &def, nil
}

// resolve joins a possibly-relative reference with the manifest directory.
func resolve(baseDir, ref string) string {
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(baseDir, ref)
}

// FormatForExtension maps a file extension to its media type.
// The leading dot is optional and matching is case-insensitive.
func FormatForExtension(ext string) (string, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "image/jpeg", true
	case "png":
		return "image/png", true
	case "gif":
		return "image/gif", true
	case "webp":
		return "image/webp", true
	case "tiff", "tif":
		return "image/tiff", true
	case "bmp":
		return "image/bmp", true
	default:
		return "", false
	}
}
