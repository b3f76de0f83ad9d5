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

// Package crypto provides internal cryptographic operations for manifest
// signing.
//
// This package contains the low-level primitives used by the manifest
// engine. External consumers should use the higher-level APIs in
// pkg/signing and pkg/verify instead.
package crypto

import "strconv"

// ComputePAE computes the Pre-Authentication Encoding for DSSE (Dead Simple
// Signing Envelope). The encoding format is:
// "DSSEv1" + SP + LEN(type) + SP + type + SP + LEN(payload) + SP + payload
// where SP is a space character and LEN is the ASCII decimal length.
func ComputePAE(payloadType string, payload []byte) []byte {
	pae := []byte("DSSEv1 ")
	pae = strconv.AppendInt(pae, int64(len(payloadType)), 10)
	pae = append(pae, ' ')
	pae = append(pae, payloadType...)
	pae = append(pae, ' ')
	pae = strconv.AppendInt(pae, int64(len(payload)), 10)
	pae = append(pae, ' ')
	pae = append(pae, payload...)
	return pae
}
