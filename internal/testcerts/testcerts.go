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

// Package testcerts generates throwaway key pairs and self-signed
// certificates for tests. Nothing here is suitable for production use.
package testcerts

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
)

// KeyPair is a generated signing key with a matching self-signed
// certificate, both PEM-encoded.
type KeyPair struct {
	Key     crypto.Signer
	KeyPEM  []byte
	CertPEM []byte
}

// Generate creates a key satisfying the spec's key-type requirement and a
// self-signed certificate for it.
func Generate(t *testing.T, spec algorithms.Spec) *KeyPair {
	t.Helper()

	var (
		key crypto.Signer
		err error
	)
	switch spec.Key.Kind {
	case algorithms.KindECDSA:
		key, err = ecdsa.GenerateKey(spec.Key.Curve, rand.Reader)
	case algorithms.KindRSAPSS:
		key, err = rsa.GenerateKey(rand.Reader, spec.Key.MinModulusBits)
	case algorithms.KindEd25519:
		_, key, err = ed25519.GenerateKey(rand.Reader)
	}
	if err != nil {
		t.Fatalf("Failed to generate key for %s: %v", spec.ID, err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("Failed to marshal private key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "c2pa-testfile-maker test", Organization: []string{"test"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	certDER, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	if err != nil {
		t.Fatalf("Failed to create certificate: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	return &KeyPair{Key: key, KeyPEM: keyPEM, CertPEM: certPEM}
}

// WriteFiles writes the key and certificate into dir and returns their
// paths (certPath, keyPath).
func (kp *KeyPair) WriteFiles(t *testing.T, dir string) (string, string) {
	t.Helper()

	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	if err := os.WriteFile(certPath, kp.CertPEM, 0o644); err != nil {
		t.Fatalf("Failed to write certificate: %v", err)
	}
	if err := os.WriteFile(keyPath, kp.KeyPEM, 0o600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
	return certPath, keyPath
}

// MinimalPNG returns bytes that sniff as a PNG asset.
func MinimalPNG() []byte {
	return []byte("\x89PNG\r\n\x1a\n" + "testimagepayload")
}

// MinimalJPEG returns bytes that sniff as a JPEG asset.
func MinimalJPEG() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("testimagepayload")...)
}
