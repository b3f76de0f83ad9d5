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

// Package algorithms defines the registry of supported signing algorithms.
//
// Each algorithm carries a key-type requirement (elliptic curve, RSA-PSS
// modulus class, or Ed25519) and a hash function. The registry is immutable
// static data; lookup is a pure function over the fixed set.
package algorithms

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
)

// Algorithm identifies a supported signing algorithm.
type Algorithm string

const (
	// ES256 is ECDSA over P-256 with SHA-256.
	ES256 Algorithm = "es256"
	// ES384 is ECDSA over P-384 with SHA-384.
	ES384 Algorithm = "es384"
	// ES512 is ECDSA over P-521 with SHA-512.
	ES512 Algorithm = "es512"
	// PS256 is RSA-PSS with SHA-256.
	PS256 Algorithm = "ps256"
	// PS384 is RSA-PSS with SHA-384.
	PS384 Algorithm = "ps384"
	// PS512 is RSA-PSS with SHA-512.
	PS512 Algorithm = "ps512"
	// Ed25519 is pure Ed25519 (no pre-hashing).
	Ed25519 Algorithm = "ed25519"
)

// KeyKind is the key family an algorithm requires.
type KeyKind int

const (
	// KindECDSA requires an ECDSA key on a specific curve.
	KindECDSA KeyKind = iota
	// KindRSAPSS requires an RSA key of at least a minimum modulus size,
	// used with PSS padding.
	KindRSAPSS
	// KindEd25519 requires an Ed25519 key.
	KindEd25519
)

// MinRSAModulusBits is the smallest RSA modulus accepted for the PS variants.
const MinRSAModulusBits = 2048

// KeyRequirement is the key-type requirement of an algorithm: one tagged
// variant per supported key family.
type KeyRequirement struct {
	Kind KeyKind
	// Curve is set for KindECDSA.
	Curve elliptic.Curve
	// MinModulusBits is set for KindRSAPSS.
	MinModulusBits int
}

// String returns a human-readable description of the requirement.
func (r KeyRequirement) String() string {
	switch r.Kind {
	case KindECDSA:
		return fmt.Sprintf("ECDSA %s", r.Curve.Params().Name)
	case KindRSAPSS:
		return fmt.Sprintf("RSA-PSS (>= %d bits)", r.MinModulusBits)
	case KindEd25519:
		return "Ed25519"
	default:
		return "unknown"
	}
}

// Matches checks a public key against the requirement.
// Returns nil if the key family and parameters satisfy the requirement,
// or a descriptive error naming both sides of the mismatch.
func (r KeyRequirement) Matches(pub crypto.PublicKey) error {
	switch key := pub.(type) {
	case *ecdsa.PublicKey:
		if r.Kind != KindECDSA {
			return fmt.Errorf("algorithm requires %s, but key is ECDSA %s", r, key.Curve.Params().Name)
		}
		if key.Curve != r.Curve {
			return fmt.Errorf("algorithm requires curve %s, but key uses %s",
				r.Curve.Params().Name, key.Curve.Params().Name)
		}
		return nil
	case *rsa.PublicKey:
		if r.Kind != KindRSAPSS {
			return fmt.Errorf("algorithm requires %s, but key is RSA (%d bits)", r, key.N.BitLen())
		}
		if key.N.BitLen() < r.MinModulusBits {
			return fmt.Errorf("algorithm requires an RSA modulus of at least %d bits, but key has %d",
				r.MinModulusBits, key.N.BitLen())
		}
		return nil
	case ed25519.PublicKey:
		if r.Kind != KindEd25519 {
			return fmt.Errorf("algorithm requires %s, but key is Ed25519", r)
		}
		return nil
	default:
		return fmt.Errorf("unsupported key type: %T", pub)
	}
}

// Spec describes one supported algorithm. Exactly one instance exists per
// identifier; instances are never mutated after process start.
type Spec struct {
	// ID is the algorithm identifier.
	ID Algorithm
	// Key is the key-type requirement.
	Key KeyRequirement
	// Hash is the digest function applied before signing.
	// crypto.Hash(0) means the algorithm signs the raw message (Ed25519).
	Hash crypto.Hash
}

var registry = map[Algorithm]Spec{
	ES256: {
		ID:   ES256,
		Key:  KeyRequirement{Kind: KindECDSA, Curve: elliptic.P256()},
		Hash: crypto.SHA256,
	},
	ES384: {
		ID:   ES384,
		Key:  KeyRequirement{Kind: KindECDSA, Curve: elliptic.P384()},
		Hash: crypto.SHA384,
	},
	ES512: {
		ID:   ES512,
		Key:  KeyRequirement{Kind: KindECDSA, Curve: elliptic.P521()},
		Hash: crypto.SHA512,
	},
	PS256: {
		ID:   PS256,
		Key:  KeyRequirement{Kind: KindRSAPSS, MinModulusBits: MinRSAModulusBits},
		Hash: crypto.SHA256,
	},
	PS384: {
		ID:   PS384,
		Key:  KeyRequirement{Kind: KindRSAPSS, MinModulusBits: MinRSAModulusBits},
		Hash: crypto.SHA384,
	},
	PS512: {
		ID:   PS512,
		Key:  KeyRequirement{Kind: KindRSAPSS, MinModulusBits: MinRSAModulusBits},
		Hash: crypto.SHA512,
	},
	Ed25519: {
		ID:   Ed25519,
		Key:  KeyRequirement{Kind: KindEd25519},
		Hash: crypto.Hash(0),
	},
}

// order fixes the listing order for All and usage text.
var order = []Algorithm{ES256, ES384, ES512, PS256, PS384, PS512, Ed25519}

// Lookup returns the Spec for the given identifier. The identifier is
// matched case-insensitively. Unknown identifiers fail with an
// UnsupportedAlgorithm pipeline error.
func Lookup(id string) (Spec, error) {
	spec, ok := registry[Algorithm(strings.ToLower(strings.TrimSpace(id)))]
	if !ok {
		return Spec{}, pipeline.NewError(pipeline.ErrTypeUnsupportedAlgorithm,
			fmt.Sprintf("unsupported signing algorithm %q (supported: %s)", id, Names()), nil)
	}
	return spec, nil
}

// All returns the supported algorithm specs in a stable order.
func All() []Spec {
	specs := make([]Spec, 0, len(order))
	for _, id := range order {
		specs = append(specs, registry[id])
	}
	return specs
}

// Names returns the supported identifiers as a comma-separated string.
func Names() string {
	names := make([]string, 0, len(order))
	for _, id := range order {
		names = append(names, string(id))
	}
	return strings.Join(names, ", ")
}
