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

// Package embedded is the default manifest engine.
//
// It serializes the provenance claim to JSON, signs it as a DSSE envelope,
// and appends an engine-owned manifest-store trailer to the asset bytes.
// Verification locates the trailer, recovers the signing certificate from
// the embedded chain, and checks the envelope signature under the claim's
// asserted algorithm.
package embedded

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/secure-systems-lab/go-securesystemslib/dsse"
	"github.com/sigstore/sigstore/pkg/cryptoutils"

	internalcrypto "github.com/lrosenthol/c2pa-testfile-maker/internal/crypto"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/engine"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/manifest"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/pipeline"
)

// PayloadType is the DSSE payload type for serialized provenance claims.
const PayloadType = "application/x-c2pa-claim+json"

// storeMarker delimits the manifest-store trailer appended to the asset.
// The format of everything after the marker is owned by this engine.
var storeMarker = []byte("\x00\x00c2pa.manifest.store\x00")

// Verify Engine implements engine.Engine at compile time.
var _ engine.Engine = (*Engine)(nil)

// Engine is the default, self-contained manifest engine.
type Engine struct {
	// now supplies claim timestamps; overridable in tests.
	now func() time.Time
}

// New returns a ready-to-use engine.
func New() *Engine {
	return &Engine{now: time.Now}
}

// claim is the signed payload of the manifest store.
type claim struct {
	InstanceID     string               `json:"instance_id"`
	Title          string               `json:"title,omitempty"`
	ClaimGenerator string               `json:"claim_generator,omitempty"`
	Format         string               `json:"format"`
	Algorithm      string               `json:"alg"`
	SignedAt       time.Time            `json:"signed_at"`
	Assertions     []manifest.Assertion `json:"assertions,omitempty"`
	Ingredients    []ingredientClaim    `json:"ingredients,omitempty"`
	Thumbnail      *assetRef            `json:"thumbnail,omitempty"`
}

// ingredientClaim records a source asset by content digest.
type ingredientClaim struct {
	Title        string `json:"title,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Format       string `json:"format"`
	Digest       string `json:"digest"`
}

// assetRef records a referenced asset by content digest.
type assetRef struct {
	Format string `json:"format"`
	Digest string `json:"digest"`
}

// manifestStore is the trailer content: the signed claim envelope plus the
// certificate chain needed to verify it.
type manifestStore struct {
	Envelope  dsse.Envelope `json:"envelope"`
	CertChain string        `json:"cert_chain"`
}

// Embed implements engine.Engine.
func (e *Engine) Embed(_ context.Context, signer *engine.Signer, def *manifest.Definition, asset []byte) ([]byte, error) {
	format, ok := sniffFormat(asset)
	if !ok {
		return nil, pipeline.NewError(pipeline.ErrTypeAssetFormat,
			"input asset is not a supported container format (JPEG, PNG, WebP)", nil)
	}

	c := claim{
		InstanceID:     "xmp:iid:" + uuid.NewString(),
		Title:          def.Title,
		ClaimGenerator: def.ClaimGenerator,
		Format:         format,
		Algorithm:      string(signer.Spec.ID),
		SignedAt:       e.now().UTC(),
		Assertions:     def.Assertions,
	}

	for _, ing := range def.Ingredients {
		digest, err := digestFile(ing.FilePath)
		if err != nil {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeEmbedding,
				ing.FilePath, "cannot digest ingredient file", err)
		}
		c.Ingredients = append(c.Ingredients, ingredientClaim{
			Title:        ing.Title,
			Relationship: ing.Relationship,
			Format:       ing.Format,
			Digest:       digest,
		})
	}

	if def.Thumbnail != nil {
		digest, err := digestFile(def.Thumbnail.Identifier)
		if err != nil {
			return nil, pipeline.NewErrorWithPath(pipeline.ErrTypeEmbedding,
				def.Thumbnail.Identifier, "cannot digest thumbnail file", err)
		}
		c.Thumbnail = &assetRef{Format: def.Thumbnail.Format, Digest: digest}
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeEmbedding, "cannot serialize claim", err)
	}

	pae := internalcrypto.ComputePAE(PayloadType, payload)
	sig, err := internalcrypto.Sign(signer.Key, signer.Spec, pae)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeEmbedding, "signing failed", err)
	}

	keyID, err := keyHint(signer)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeEmbedding, "cannot compute key hint", err)
	}

	store := manifestStore{
		Envelope: dsse.Envelope{
			PayloadType: PayloadType,
			Payload:     base64.StdEncoding.EncodeToString(payload),
			Signatures: []dsse.Signature{{
				KeyID: keyID,
				Sig:   base64.StdEncoding.EncodeToString(sig),
			}},
		},
		CertChain: string(signer.ChainPEM),
	}

	storeJSON, err := json.Marshal(store)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeEmbedding, "cannot serialize manifest store", err)
	}

	out := make([]byte, 0, len(asset)+len(storeMarker)+4+len(storeJSON))
	out = append(out, asset...)
	out = append(out, storeMarker...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(storeJSON)))
	out = append(out, storeJSON...)
	return out, nil
}

// Verify implements engine.Engine.
func (e *Engine) Verify(_ context.Context, asset []byte) (*engine.Report, error) {
	idx := bytes.LastIndex(asset, storeMarker)
	if idx < 0 {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"asset carries no embedded provenance manifest", nil)
	}

	body := asset[idx+len(storeMarker):]
	if len(body) < 4 {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"manifest store is truncated", nil)
	}
	size := binary.BigEndian.Uint32(body[:4])
	if uint32(len(body)-4) < size {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"manifest store is truncated", nil)
	}

	var store manifestStore
	if err := json.Unmarshal(body[4:4+size], &store); err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"cannot parse manifest store", err)
	}
	if len(store.Envelope.Signatures) != 1 {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			fmt.Sprintf("expected exactly one signature, found %d", len(store.Envelope.Signatures)), nil)
	}

	payload, err := base64.StdEncoding.DecodeString(store.Envelope.Payload)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"cannot decode claim payload", err)
	}
	sig, err := base64.StdEncoding.DecodeString(store.Envelope.Signatures[0].Sig)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"cannot decode signature", err)
	}

	var c claim
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"cannot parse claim", err)
	}

	spec, err := algorithms.Lookup(c.Algorithm)
	if err != nil {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"claim asserts an unknown algorithm", err)
	}

	chain, err := cryptoutils.UnmarshalCertificatesFromPEM([]byte(store.CertChain))
	if err != nil || len(chain) == 0 {
		return nil, pipeline.NewError(pipeline.ErrTypeVerification,
			"cannot recover signing certificate from manifest store", err)
	}

	report := &engine.Report{
		Title:          c.Title,
		ClaimGenerator: c.ClaimGenerator,
		Algorithm:      spec.ID,
		SignedAt:       c.SignedAt,
	}

	pae := internalcrypto.ComputePAE(store.Envelope.PayloadType, payload)
	status := engine.StatusValidated
	if err := internalcrypto.Verify(chain[0].PublicKey, spec, pae, sig); err != nil {
		status = engine.StatusFailed
	} else {
		report.Valid = true
	}

	for _, a := range c.Assertions {
		report.Findings = append(report.Findings, engine.Finding{Label: a.Label, Status: status})
	}
	return report, nil
}

// keyHint computes the verification-material hint for the signing key:
// the hex-encoded SHA-256 of the PEM-encoded public key.
func keyHint(signer *engine.Signer) (string, error) {
	pubPEM, err := cryptoutils.MarshalPublicKeyToPEM(signer.Key.Public())
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(pubPEM)
	return hex.EncodeToString(sum[:]), nil
}

// digestFile returns the hex-encoded SHA-256 of a file's contents.
func digestFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// sniffFormat detects the asset container format from its magic bytes.
func sniffFormat(asset []byte) (string, bool) {
	switch {
	case len(asset) >= 3 && bytes.HasPrefix(asset, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg", true
	case bytes.HasPrefix(asset, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png", true
	case len(asset) >= 12 && bytes.HasPrefix(asset, []byte("RIFF")) && bytes.Equal(asset[8:12], []byte("WEBP")):
		return "image/webp", true
	default:
		return "", false
	}
}
