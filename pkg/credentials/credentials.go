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

// Package credentials loads and validates the certificate / private-key
// pair used for signing.
//
// The key is checked against the requested algorithm's key-type requirement
// before any signing is attempted, so a mismatched key is rejected early
// rather than surfacing as an opaque engine-level failure.
package credentials

import (
	"crypto"
	"crypto/x509"
	"os"

	"github.com/sigstore/sigstore/pkg/cryptoutils"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
)

// Credential is a validated certificate / private-key pair, bound to the
// algorithm it was validated against. It is created once per invocation,
// owned by the signing orchestrator for the run, and never cached.
type Credential struct {
	// Algorithm is the spec the key was validated against.
	Algorithm algorithms.Spec
	// PrivateKey is the parsed signing key.
	PrivateKey crypto.Signer
	// Leaf is the end-entity signing certificate (first in the chain).
	Leaf *x509.Certificate
	// Chain is the full certificate chain as parsed from the file.
	Chain []*x509.Certificate
	// ChainPEM is the raw PEM-encoded certificate chain, embedded into the
	// manifest store so verifiers can recover the signing certificate.
	ChainPEM []byte
}

// Load reads a PEM certificate chain and private key from the given paths
// and validates them against the algorithm spec.
//
// Failure classification: MissingFile (unreadable path),
// MalformedCertificate (unparseable chain, empty chain, or a certificate
// that does not pair with the key), MalformedKey (unparseable key),
// AlgorithmKeyTypeMismatch (key family does not satisfy the spec).
//
// If password is non-empty, the private key is assumed to be encrypted.
func Load(certPath, keyPath string, spec algorithms.Spec, password string) (*Credential, error) {
	chainPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
			certPath, "cannot read certificate file", err)
	}

	chain, err := cryptoutils.UnmarshalCertificatesFromPEM(chainPEM)
	if err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMalformedCertificate,
			certPath, "cannot parse certificate chain", err)
	}
	if len(chain) == 0 {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMalformedCertificate,
			certPath, "no certificates found", nil)
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMissingFile,
			keyPath, "cannot read private key file", err)
	}

	var passFunc cryptoutils.PassFunc
	if password != "" {
		passFunc = func(_ bool) ([]byte, error) {
			return []byte(password), nil
		}
	}

	privKey, err := cryptoutils.UnmarshalPEMToPrivateKey(keyPEM, passFunc)
	if err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMalformedKey,
			keyPath, "cannot parse private key", err)
	}

	signer, ok := privKey.(crypto.Signer)
	if !ok {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMalformedKey,
			keyPath, "private key does not implement crypto.Signer", nil)
	}

	// Key-type check happens before any signing attempt.
	if err := spec.Key.Matches(signer.Public()); err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeKeyTypeMismatch,
			keyPath, "private key does not satisfy algorithm "+string(spec.ID), err)
	}

	// The leaf certificate must pair with the private key.
	leaf := chain[0]
	if err := cryptoutils.EqualKeys(signer.Public(), leaf.PublicKey); err != nil {
		return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeMalformedCertificate,
			certPath, "signing certificate does not match private key", err)
	}

	return &Credential{
		Algorithm:  spec,
		PrivateKey: signer,
		Leaf:       leaf,
		Chain:      chain,
		ChainPEM:   chainPEM,
	}, nil
}
