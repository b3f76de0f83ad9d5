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

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lrosenthol/c2pa-testfile-maker/cmd/c2pa-testfile-maker/cli/options"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/algorithms"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/credentials"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/engine/embedded"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/logging"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/manifest"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/signing"
)

// Sign creates the sign command.
//
// The pipeline is strictly linear: algorithm lookup, credential load,
// manifest load, engine embed, optional verification pass. Every loader
// failure aborts before any output is written.
func Sign() *cobra.Command {
	o := &options.SignOptions{}

	long := `Sign a media asset with an embedded provenance manifest.

    Reads the manifest definition at MANIFEST, signs it with the key and
    certificate pair given via --private-key and --cert, and embeds the
    result into the asset at INPUT, producing OUTPUT. If OUTPUT names an
    existing directory, the input's filename is appended.

    The private key's type must match the requested --algorithm: an
    elliptic-curve algorithm needs a key on the matching curve, and the
    RSA-PSS variants need an RSA key of sufficient modulus size. A
    mismatched key is rejected before any signing is attempted.

    Passing --verify re-opens the freshly written output and verifies the
    embedded manifest. A verification failure exits non-zero but does not
    remove the signed output.`

	cmd := &cobra.Command{
		Use:   "sign [OPTIONS]",
		Short: "Sign a media asset with an embedded provenance manifest.",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := ro.NewLogger()

			spec, err := algorithms.Lookup(o.Algorithm)
			if err != nil {
				return err
			}

			cred, err := credentials.Load(o.CertPath, o.KeyPath, spec, o.Password)
			if err != nil {
				return err
			}

			def, err := manifest.Load(o.ManifestPath)
			if err != nil {
				return err
			}

			orch := signing.NewOrchestrator(embedded.New(), logger)

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			result, err := orch.Run(ctx, signing.Request{
				InputPath:  o.InputPath,
				OutputPath: o.OutputPath,
				Credential: cred,
				Definition: def,
				Verify:     o.Verify,
			})
			if result.Signed && ro.GetLogLevel() < logging.LevelSilent {
				fmt.Printf("Signed asset written to: %s\n", result.OutputPath)
				if result.Report != nil && result.Report.Valid {
					fmt.Println("Verification: passed")
				}
			}
			return err
		},
	}

	o.AddFlags(cmd)
	return cmd
}
