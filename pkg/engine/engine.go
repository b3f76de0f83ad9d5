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

// Package engine defines the contract with the manifest-embedding engine.
//
// The engine owns the provenance data model, the media container handling,
// and the cryptographic embedding and verification of manifests. The
// signing pipeline only drives it: it hands over a signer, a manifest
// definition, and the input asset bytes, and receives the signed asset or
// a verification report.
package engine

import (
	"context"
	"crypto"
	"crypto/x509"
	"time"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/credentials"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/manifest"
)

// Signer is the algorithm + credential pairing the engine signs with.
type Signer struct {
	// Spec is the signing algorithm.
	Spec algorithms.Spec
	// Key is the private signing key, already validated against Spec.
	Key crypto.Signer
	// Leaf is the end-entity signing certificate.
	Leaf *x509.Certificate
	// ChainPEM is the PEM-encoded certificate chain embedded alongside the
	// signature so verifiers can recover the signing certificate.
	ChainPEM []byte
}

// NewSigner builds a Signer from a validated credential.
func NewSigner(cred *credentials.Credential) *Signer {
	return &Signer{
		Spec:     cred.Algorithm,
		Key:      cred.PrivateKey,
		Leaf:     cred.Leaf,
		ChainPEM: cred.ChainPEM,
	}
}

// Finding is the verification status of a single assertion.
type Finding struct {
	// Label identifies the assertion.
	Label string `json:"label"`
	// Status is "validated" when the assertion is covered by a valid
	// signature, or a failure code otherwise.
	Status string `json:"status"`
}

// Assertion verification statuses.
const (
	StatusValidated = "validated"
	StatusFailed    = "signature.mismatch"
)

// Report is the result of a verification pass over a signed asset.
type Report struct {
	// Valid is true when the embedded manifest's signature verifies against
	// its certificate.
	Valid bool `json:"valid"`
	// Title is the manifest title, if any.
	Title string `json:"title,omitempty"`
	// ClaimGenerator names the tool that produced the claim.
	ClaimGenerator string `json:"claim_generator,omitempty"`
	// Algorithm is the identifier the manifest asserts it was signed under.
	Algorithm algorithms.Algorithm `json:"algorithm"`
	// SignedAt is the claim timestamp.
	SignedAt time.Time `json:"signed_at"`
	// Findings holds one entry per assertion in the manifest.
	Findings []Finding `json:"findings,omitempty"`
}

// Engine signs and embeds manifests into assets, and verifies them.
type Engine interface {
	// Embed signs the manifest definition with the signer and embeds the
	// resulting manifest store into the asset, returning the signed asset
	// bytes. Fails with AssetFormatUnsupported if the asset's container
	// format is not recognized, or EmbeddingFailure otherwise.
	Embed(ctx context.Context, signer *Signer, def *manifest.Definition, asset []byte) ([]byte, error)

	// Verify locates the embedded manifest store in a signed asset and
	// checks its signature. The asset is never mutated. A structurally
	// unreadable store is an error; a readable store with a bad signature
	// yields a Report with Valid set to false.
	Verify(ctx context.Context, asset []byte) (*Report, error)
}
