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
	"crypto/rsa"
	"fmt"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
)

// Verify checks a signature over message using the public key and the
// algorithm spec the signature was produced under.
// Returns nil if the signature is valid.
func Verify(pub stdcrypto.PublicKey, spec algorithms.Spec, message, signature []byte) error {
	switch k := pub.(type) {
	case *ecdsa.PublicKey:
		digest := hashWith(spec.Hash, message)
		if !ecdsa.VerifyASN1(k, digest, signature) {
			return fmt.Errorf("ECDSA signature verification failed")
		}
		return nil
	case *rsa.PublicKey:
		digest := hashWith(spec.Hash, message)
		if err := rsa.VerifyPSS(k, spec.Hash, digest, signature, nil); err != nil {
			return fmt.Errorf("RSA-PSS signature verification failed: %w", err)
		}
		return nil
	case ed25519.PublicKey:
		if !ed25519.Verify(k, message, signature) {
			return fmt.Errorf("Ed25519 signature verification failed")
		}
		return nil
	default:
		return fmt.Errorf("unsupported public key type for verification: %T", pub)
	}
}
