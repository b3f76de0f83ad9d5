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

package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lrosenthol/c2pa-testfile-maker/internal/testcerts"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
)

func TestLoad_AllAlgorithms(t *testing.T) {
	for _, spec := range algorithms.All() {
		t.Run(string(spec.ID), func(t *testing.T) {
			kp := testcerts.Generate(t, spec)
			certPath, keyPath := kp.WriteFiles(t, t.TempDir())

			cred, err := Load(certPath, keyPath, spec, "")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if cred.Algorithm.ID != spec.ID {
				t.Errorf("Credential bound to %s, want %s", cred.Algorithm.ID, spec.ID)
			}
			if cred.Leaf == nil {
				t.Error("Credential has no leaf certificate")
			}
			if len(cred.Chain) != 1 {
				t.Errorf("Expected a single-certificate chain, got %d", len(cred.Chain))
			}
			if len(cred.ChainPEM) == 0 {
				t.Error("Credential has no raw chain PEM")
			}
		})
	}
}

func TestLoad_MissingCertificateFile(t *testing.T) {
	spec, _ := algorithms.Lookup("es256")
	kp := testcerts.Generate(t, spec)
	_, keyPath := kp.WriteFiles(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.pem"), keyPath, spec, "")
	if !pipeline.IsType(err, pipeline.ErrTypeMissingFile) {
		t.Errorf("Expected MissingFile, got %v", err)
	}
}

func TestLoad_MissingKeyFile(t *testing.T) {
	spec, _ := algorithms.Lookup("es256")
	kp := testcerts.Generate(t, spec)
	certPath, _ := kp.WriteFiles(t, t.TempDir())

	_, err := Load(certPath, filepath.Join(t.TempDir(), "nope.pem"), spec, "")
	if !pipeline.IsType(err, pipeline.ErrTypeMissingFile) {
		t.Errorf("Expected MissingFile, got %v", err)
	}
}

func TestLoad_MalformedCertificate(t *testing.T) {
	spec, _ := algorithms.Lookup("es256")
	kp := testcerts.Generate(t, spec)
	dir := t.TempDir()
	_, keyPath := kp.WriteFiles(t, dir)

	certPath := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(certPath, []byte("not a certificate"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Load(certPath, keyPath, spec, "")
	if !pipeline.IsType(err, pipeline.ErrTypeMalformedCertificate) {
		t.Errorf("Expected MalformedCertificate, got %v", err)
	}
}

func TestLoad_MalformedKey(t *testing.T) {
	spec, _ := algorithms.Lookup("es256")
	kp := testcerts.Generate(t, spec)
	dir := t.TempDir()
	certPath, _ := kp.WriteFiles(t, dir)

	keyPath := filepath.Join(dir, "garbage.key")
	if err := os.WriteFile(keyPath, []byte("not a key"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Load(certPath, keyPath, spec, "")
	if !pipeline.IsType(err, pipeline.ErrTypeMalformedKey) {
		t.Errorf("Expected MalformedKey, got %v", err)
	}
}

func TestLoad_KeyTypeMismatch(t *testing.T) {
	// An EC key presented for an RSA-PSS algorithm must be rejected before
	// any signing happens.
	es256, _ := algorithms.Lookup("es256")
	ps256, _ := algorithms.Lookup("ps256")

	kp := testcerts.Generate(t, es256)
	certPath, keyPath := kp.WriteFiles(t, t.TempDir())

	_, err := Load(certPath, keyPath, ps256, "")
	if !pipeline.IsType(err, pipeline.ErrTypeKeyTypeMismatch) {
		t.Errorf("Expected AlgorithmKeyTypeMismatch, got %v", err)
	}
}

func TestLoad_CurveMismatch(t *testing.T) {
	es256, _ := algorithms.Lookup("es256")
	es384, _ := algorithms.Lookup("es384")

	kp := testcerts.Generate(t, es256)
	certPath, keyPath := kp.WriteFiles(t, t.TempDir())

	_, err := Load(certPath, keyPath, es384, "")
	if !pipeline.IsType(err, pipeline.ErrTypeKeyTypeMismatch) {
		t.Errorf("Expected AlgorithmKeyTypeMismatch, got %v", err)
	}
}

func TestLoad_CertificateKeyPairMismatch(t *testing.T) {
	spec, _ := algorithms.Lookup("es256")

	kpA := testcerts.Generate(t, spec)
	kpB := testcerts.Generate(t, spec)

	dir := t.TempDir()
	certPath, _ := kpA.WriteFiles(t, dir)

	keyPath := filepath.Join(dir, "other.key")
	if err := os.WriteFile(keyPath, kpB.KeyPEM, 0o600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}

	_, err := Load(certPath, keyPath, spec, "")
	if !pipeline.IsType(err, pipeline.ErrTypeMalformedCertificate) {
		t.Errorf("Expected MalformedCertificate for unrelated cert/key pair, got %v", err)
	}
}
