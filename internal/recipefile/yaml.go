// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipefile

import (
	"github.com/goccy/go-yaml"
)

type yamlFile struct {
	Recipes []Definition `yaml:"recipes"`
}

func decodeYAML(data []byte) ([]Definition, error) {
	var f yamlFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return f.Recipes, nil
}
