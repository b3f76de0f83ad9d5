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
)

// VerifyOptions defines flags for the verify command.
type VerifyOptions struct {
	InputPath string // --input INPUT (required)
}

// AddFlags adds verification flags to the cobra command.
func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.InputPath, "input", "i", "",
		"Path to the signed media asset to verify. [required]")
	_ = cmd.MarkFlagRequired("input")
}
