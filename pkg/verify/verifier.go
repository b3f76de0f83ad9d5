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

// Package verify runs the verification pass over a signed asset.
//
// Verification never mutates the asset, and a failed verification never
// rolls back a previously written output: signing and verification are
// independent confirmations.
package verify

import (
	"context"
	"os"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/engine"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/logging"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/utils"
)

// VerifierOptions configures a Verifier.
type VerifierOptions struct {
	// AssetPath is the signed asset to verify.
	AssetPath string
	// Engine performs the actual manifest verification.
	Engine engine.Engine
	// Logger receives progress output. Defaults to the package default.
	Logger logging.Logger
}

// Verifier re-invokes the manifest engine in verification mode against a
// signed asset and reports pass/fail.
type Verifier struct {
	opts VerifierOptions
}

// NewVerifier validates the options and returns a Verifier.
func NewVerifier(opts VerifierOptions) (*Verifier, error) {
	if err := utils.ValidateFileExists("asset path", opts.AssetPath); err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
			opts.AssetPath, "cannot verify asset", err)
	}
	if opts.Engine == nil {
		return nil, pipeline.NewError(pipeline.ErrTypeUnknown, "no manifest engine configured", nil)
	}
	opts.Logger = logging.EnsureLogger(opts.Logger)
	return &Verifier{opts: opts}, nil
}

// Verify reads the asset and checks its embedded manifest.
//
// Returns the engine's report. When the report is invalid, the returned
// error is a VerificationFailure; the asset itself is left untouched.
func (v *Verifier) Verify(ctx context.Context) (*engine.Report, error) {
	asset, err := os.ReadFile(v.opts.AssetPath)
	if err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
			v.opts.AssetPath, "cannot read asset", err)
	}

	report, err := v.opts.Engine.Verify(ctx, asset)
	if err != nil {
		return nil, err
	}

	if !report.Valid {
		v.opts.Logger.Warn("verification failed for %s", v.opts.AssetPath)
		return report, pipeline.NewErrorWithPath(pipeline.ErrTypeVerification,
			v.opts.AssetPath, "embedded manifest signature is invalid", nil)
	}

	v.opts.Logger.Debug("verified manifest %q signed at %s with %s",
		report.Title, report.SignedAt, report.Algorithm)
	return report, nil
}
