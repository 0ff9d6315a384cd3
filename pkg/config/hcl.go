// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

type HCLParser struct{}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) ([]EditDescriptor, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "modifications.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema, field presence is checked by Validate so messages match the other formats
	type hclConfig struct {
		Modifications *struct {
			Modification []struct {
				File        string `hcl:"file,optional"`
				Instruction string `hcl:"instruction,optional"`
				Description string `hcl:"description,optional"`
			} `hcl:"modification,block"`
		} `hcl:"modifications,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if hclCfg.Modifications == nil {
		return nil, errMissingModifications
	}

	descriptors := make([]EditDescriptor, 0, len(hclCfg.Modifications.Modification))
	for _, m := range hclCfg.Modifications.Modification {
		descriptors = append(descriptors, EditDescriptor{
			File:        m.File,
			Instruction: m.Instruction,
			Description: m.Description,
		})
	}

	return descriptors, nil
}
