// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipefile

import (
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

type hclFile struct {
	Recipes []hclRecipe `hcl:"recipe,block"`
}

type hclRecipe struct {
	Name             string            `hcl:"name,label"`
	Description      string            `hcl:"description,optional"`
	Deps             []string          `hcl:"deps,optional"`
	Run              []string          `hcl:"run,optional"`
	Env              map[string]string `hcl:"env,optional"`
	WorkingDirectory string            `hcl:"working_directory,optional"`
}

// EnvironFunc returns the environment exposed to HCL expressions as `env`.
var EnvironFunc = os.Environ

func decodeHCL(filename string, data []byte) ([]Definition, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diagsError(diags)
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &f); diags.HasErrors() {
		return nil, diagsError(diags)
	}

	defs := make([]Definition, 0, len(f.Recipes))
	for _, r := range f.Recipes {
		defs = append(defs, Definition(r))
	}

	return defs, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range EnvironFunc() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"join":      stdlib.JoinFunc,
			"format":    stdlib.FormatFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}

func diagsError(diags hcl.Diagnostics) error {
	var result *multierror.Error

	for _, d := range diags.Errs() {
		result = multierror.Append(result, d)
	}

	return result.ErrorOrNil()
}
