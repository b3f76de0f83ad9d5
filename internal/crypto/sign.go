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

package crypto

import (
	stdcrypto "crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
)

// Sign signs data with the given private key, following the algorithm
// spec's key family, padding scheme, and hash function.
//
// The caller is expected to have validated the key against the spec's
// key-type requirement; a key of the wrong family still fails here, but
// with a less specific error.
//
// ECDSA signatures use ASN.1 encoding with the spec's hash. RSA keys sign
// with PSS padding. Ed25519 signs the raw data (no pre-hashing).
func Sign(key stdcrypto.Signer, spec algorithms.Spec, data []byte) ([]byte, error) {
	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		digest := hashWith(spec.Hash, data)
		sig, err := ecdsa.SignASN1(rand.Reader, k, digest)
		if err != nil {
			return nil, fmt.Errorf("ECDSA signing failed: %w", err)
		}
		return sig, nil
	case *rsa.PrivateKey:
		digest := hashWith(spec.Hash, data)
		sig, err := rsa.SignPSS(rand.Reader, k, spec.Hash, digest, nil)
		if err != nil {
			return nil, fmt.Errorf("RSA-PSS signing failed: %w", err)
		}
		return sig, nil
	case ed25519.PrivateKey:
		return ed25519.Sign(k, data), nil
	default:
		return nil, fmt.Errorf("unsupported private key type: %T", key)
	}
}

// hashWith computes the digest of data with h. A zero hash returns the
// data unchanged (pure Ed25519 does not pre-hash).
func hashWith(h stdcrypto.Hash, data []byte) []byte {
	if h == stdcrypto.Hash(0) {
		return data
	}
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil)
}
