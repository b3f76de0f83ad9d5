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

// Package signing orchestrates the signing pipeline: it combines a
// validated credential, a manifest definition, and the input asset into
// one engine embed call, and writes the signed output atomically.
package signing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/credentials"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/engine"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/logging"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/manifest"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/verify"
)

// Request aggregates everything one signing run needs. It is constructed
// once per invocation from validated inputs and consumed exactly once.
type Request struct {
	// InputPath is the media asset to embed the manifest into.
	InputPath string
	// OutputPath is where the signed asset goes. If it names an existing
	// directory, the input's filename is appended.
	OutputPath string
	// Credential is the validated certificate / key pair.
	Credential *credentials.Credential
	// Definition is the loaded manifest definition.
	Definition *manifest.Definition
	// Verify requests a verification pass over the freshly written output.
	Verify bool
}

// Result reports the outcome of a signing run.
type Result struct {
	// OutputPath is the resolved path the signed asset was written to.
	OutputPath string
	// Signed is true once the output asset has been durably written.
	Signed bool
	// Report is the verification report, present only when verification
	// was requested and the engine produced one.
	Report *engine.Report
}

// Orchestrator drives the manifest engine for one signing run at a time.
type Orchestrator struct {
	engine engine.Engine
	logger logging.Logger
}

// NewOrchestrator returns an Orchestrator using the given engine.
func NewOrchestrator(e engine.Engine, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		engine: e,
		logger: logging.EnsureLogger(logger),
	}
}

// Run executes one signing request.
//
// The signed asset is written to a temporary file in the output's
// directory and atomically renamed into place, so the output path is never
// observable in a half-written state. On failure the temporary file is
// removed and the output path is left untouched.
//
// A requested verification pass that fails does not remove the signed
// output; the Result still reports Signed and carries the report, and the
// returned error is a VerificationFailure.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if req.Credential == nil || req.Definition == nil {
		return Result{}, fmt.Errorf("signing request is incomplete")
	}

	asset, err := os.ReadFile(req.InputPath)
	if err != nil {
		return Result{}, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
			req.InputPath, "cannot read input asset", err)
	}

	outputPath, err := resolveOutputPath(req.InputPath, req.OutputPath)
	if err != nil {
		return Result{}, err
	}
	result := Result{OutputPath: outputPath}

	o.logger.Info("signing %s -> %s (algorithm %s)",
		req.InputPath, outputPath, req.Credential.Algorithm.ID)

	signer := engine.NewSigner(req.Credential)
	signed, err := o.engine.Embed(ctx, signer, req.Definition, asset)
	if err != nil {
		return result, err
	}

	if err := writeAtomic(outputPath, signed); err != nil {
		return result, pipeline.NewErrorWithPath(pipeline.ErrTypeEmbedding,
			outputPath, "cannot write signed asset", err)
	}
	result.Signed = true
	o.logger.Info("wrote signed asset to %s", outputPath)

	if req.Verify {
		verifier, err := verify.NewVerifier(verify.VerifierOptions{
			AssetPath: outputPath,
			Engine:    o.engine,
			Logger:    o.logger,
		})
		if err != nil {
			return result, err
		}
		report, err := verifier.Verify(ctx)
		result.Report = report
		if err != nil {
			// The asset is already durably signed; verification failure is
			// reported without rolling it back.
			return result, err
		}
		o.logger.Info("verification passed")
	}

	return result, nil
}

// resolveOutputPath expands a directory output to a file path and creates
// missing parent directories.
func resolveOutputPath(inputPath, outputPath string) (string, error) {
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		outputPath = filepath.Join(outputPath, filepath.Base(inputPath))
	}

	if parent := filepath.Dir(outputPath); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", pipeline.NewErrorWithPath(pipeline.ErrTypeEmbedding,
				parent, "cannot create output directory", err)
		}
	}
	return outputPath, nil
}

// writeAtomic writes data to path via a temporary file in the same
// directory followed by a rename. The temporary file is removed on any
// failure, leaving path untouched.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
