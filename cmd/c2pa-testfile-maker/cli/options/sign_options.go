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

package options

import (
	"github.com/spf13/cobra"

	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
)

// SignOptions defines flags for the sign command.
type SignOptions struct {
	ManifestPath string // --manifest MANIFEST (required)
	InputPath    string // --input INPUT (required)
	OutputPath   string // --output OUTPUT (required)
	CertPath     string // --cert CERT (required)
	KeyPath      string // --private-key PRIVATE_KEY (required)
	Algorithm    string // --algorithm, defaults to es256
	Password     string // --password
	Verify       bool   // --verify
}

// AddFlags adds signing flags to the cobra command.
func (o *SignOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.ManifestPath, "manifest", "m", "",
		"Path to the JSON manifest definition file. [required]")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagFilename("manifest", "json")

	cmd.Flags().StringVarP(&o.InputPath, "input", "i", "",
		"Path to the input media asset (JPEG, PNG, WebP). [required]")
	_ = cmd.MarkFlagRequired("input")

	cmd.Flags().StringVarP(&o.OutputPath, "output", "o", "",
		"Path to the output file or directory. [required]")
	_ = cmd.MarkFlagRequired("output")

	cmd.Flags().StringVarP(&o.CertPath, "cert", "c", "",
		"Path to the certificate chain, as a PEM-encoded file. [required]")
	_ = cmd.MarkFlagRequired("cert")
	_ = cmd.MarkFlagFilename("cert", "pem", "crt")

	cmd.Flags().StringVarP(&o.KeyPath, "private-key", "k", "",
		"Path to the private key, as a PEM-encoded file. [required]")
	_ = cmd.MarkFlagRequired("private-key")
	_ = cmd.MarkFlagFilename("private-key", "pem", "key")

	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", "es256",
		"Signing algorithm ("+algorithms.Names()+").")

	cmd.Flags().StringVar(&o.Password, "password", "",
		"Password for the key encryption, if any.")

	cmd.Flags().BoolVar(&o.Verify, "verify", false,
		"Verify the embedded manifest after signing.")
}
