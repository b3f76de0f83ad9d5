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

// Package pipeline defines the error taxonomy shared by every stage of the
// signing pipeline. Each failure is classified by an ErrorType, which maps
// to a process exit code so that calling scripts can branch on cause.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrorType categorizes a pipeline failure.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeUnsupportedAlgorithm indicates the requested signing algorithm
	// is not in the registry.
	ErrTypeUnsupportedAlgorithm

	// ErrTypeMissingFile indicates a required file could not be read.
	ErrTypeMissingFile

	// ErrTypeMalformedCertificate indicates the certificate file could not
	// be parsed, or does not pair with the private key.
	ErrTypeMalformedCertificate

	// ErrTypeMalformedKey indicates the private key file could not be parsed.
	ErrTypeMalformedKey

	// ErrTypeKeyTypeMismatch indicates the key's family (curve or RSA class)
	// does not satisfy the requested algorithm's requirement.
	ErrTypeKeyTypeMismatch

	// ErrTypeManifestParse indicates the manifest definition is malformed.
	ErrTypeManifestParse

	// ErrTypeAssetFormat indicates the input asset's container format is not
	// supported by the manifest engine.
	ErrTypeAssetFormat

	// ErrTypeEmbedding indicates the engine failed to sign and embed the
	// manifest, or the output asset could not be written.
	ErrTypeEmbedding

	// ErrTypeVerification indicates the post-signing verification pass
	// reported an invalid manifest. The signed output asset is retained.
	ErrTypeVerification
)

// String returns the taxonomy name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeUnsupportedAlgorithm:
		return "UnsupportedAlgorithm"
	case ErrTypeMissingFile:
		return "MissingFile"
	case ErrTypeMalformedCertificate:
		return "MalformedCertificate"
	case ErrTypeMalformedKey:
		return "MalformedKey"
	case ErrTypeKeyTypeMismatch:
		return "AlgorithmKeyTypeMismatch"
	case ErrTypeManifestParse:
		return "ManifestParseError"
	case ErrTypeAssetFormat:
		return "AssetFormatUnsupported"
	case ErrTypeEmbedding:
		return "EmbeddingFailure"
	case ErrTypeVerification:
		return "VerificationFailure"
	default:
		return "UnknownError"
	}
}

// Exit codes, grouped by failure cause.
const (
	// ExitCodeConfig covers bad input or configuration: unknown algorithm,
	// missing files, malformed credentials, key-type mismatch, bad manifest.
	ExitCodeConfig = 1
	// ExitCodeSigning covers signing and embedding failures.
	ExitCodeSigning = 2
	// ExitCodeVerification covers a failed post-signing verification pass.
	ExitCodeVerification = 3
)

// ExitCode returns the process exit code for this error type.
func (e ErrorType) ExitCode() int {
	switch e {
	case ErrTypeAssetFormat, ErrTypeEmbedding:
		return ExitCodeSigning
	case ErrTypeVerification:
		return ExitCodeVerification
	default:
		return ExitCodeConfig
	}
}

// Error is a structured error for pipeline failures.
//
// It records the stage's failure classification, the file path or algorithm
// identifier involved (if any), a human-readable message, and the wrapped
// cause.
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Path is the file path or identifier related to the error (optional).
	Path string

	// Message is a human-readable description of what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s (path: %s): %v", e.Type, e.Message, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path: %s)", e.Type, e.Message, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
// This satisfies the ExitCoder interface checked in main.
func (e *Error) ExitCode() int {
	return e.Type.ExitCode()
}

// NewError creates a new pipeline error.
func NewError(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorWithPath creates a new pipeline error tied to a file path.
func NewErrorWithPath(errType ErrorType, path, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err is a pipeline Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}
