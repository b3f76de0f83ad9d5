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
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/engine/embedded"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/logging"
	"github.com/lrosenthol/c2pa-testfile-maker/pkg/verify"
)

// Verify creates the verify command.
func Verify() *cobra.Command {
	o := &options.VerifyOptions{}

	long := `Verify the embedded provenance manifest of a signed asset.

    Locates the manifest embedded in the asset at INPUT, recovers the
    signing certificate, and checks the manifest signature. The asset is
    never modified. Exits non-zero if the asset carries no manifest or the
    signature does not verify.`

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS]",
		Short: "Verify the embedded provenance manifest of a signed asset.",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := ro.NewLogger()

			verifier, err := verify.NewVerifier(verify.VerifierOptions{
				AssetPath: o.InputPath,
				Engine:    embedded.New(),
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			report, err := verifier.Verify(ctx)
			if err != nil {
				return err
			}

			if ro.GetLogLevel() < logging.LevelSilent {
				fmt.Printf("Verification passed: %q signed at %s with %s (%d assertions)\n",
					report.Title, report.SignedAt.Format("2006-01-02T15:04:05Z07:00"),
					report.Algorithm, len(report.Findings))
			}
			return nil
		},
	}

	o.AddFlags(cmd)
	return cmd
}
