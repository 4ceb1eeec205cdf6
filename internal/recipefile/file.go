// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipefile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// CandidateNames are the recipe files looked for by Discover, in order of preference.
var CandidateNames = []string{"brec.yaml", "brec.yml", "brec.hcl"}

var (
	// ErrNoRecipeFile is returned when no recipe file is found.
	ErrNoRecipeFile = errors.New("no brec.yaml, brec.yml or brec.hcl found")
	// ErrNoRecipes is returned when a recipe file declares no recipes.
	ErrNoRecipes = errors.New("no recipes found")
	// ErrUnsupportedFormat is returned for a file extension that is neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported recipe file format, use .yaml, .yml or .hcl")
	// ErrReadFile is returned when the recipe file cannot be read.
	ErrReadFile = errors.New("failed to read recipe file")
	// ErrDecodeFile is returned when the recipe file cannot be decoded.
	ErrDecodeFile = errors.New("failed to decode recipe file")
	// ErrEmptyRunLine is returned when a recipe has an empty run line.
	ErrEmptyRunLine = errors.New("run lines must not be empty")
)

// Definition is one recipe as written in a file.
type Definition struct {
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description"`
	Deps             []string          `yaml:"deps"`
	Run              []string          `yaml:"run"`
	Env              map[string]string `yaml:"env"`
	WorkingDirectory string            `yaml:"working_directory"`
}

// File is a decoded recipe file.
type File struct {
	Path    string       // Path the file was read from
	Recipes []Definition // Recipes in file order
	BaseDir string       // Overrides the directory recipes run in, e.g. for a fetched file
}

// Dir returns the directory relative working directories are resolved against:
// BaseDir if set, otherwise the directory containing the file.
func (f *File) Dir() string {
	if f.BaseDir != "" {
		return f.BaseDir
	}

	return filepath.Dir(f.Path)
}

// Discover returns the path of the first candidate recipe file present in dir.
func Discover(dir string) (string, error) {
	fs := FsFactory()

	for _, name := range CandidateNames {
		p := filepath.Join(dir, name)

		fi, err := fs.Stat(p)
		if err == nil && !fi.IsDir() {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrNoRecipeFile, dir)
}

// Load reads and decodes the recipe file at path.
// The format is chosen by the file extension.
func Load(ctx context.Context, path string) (*File, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	return Decode(ctx, path, data)
}

// Decode decodes data as a recipe file named path.
func Decode(_ context.Context, path string, data []byte) (*File, error) {
	var (
		defs []Definition
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		defs, err = decodeYAML(data)
	case ".hcl":
		defs, err = decodeHCL(path, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err != nil {
		return nil, errors.Join(ErrDecodeFile, err)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRecipes, path)
	}

	if err := validate(defs); err != nil {
		return nil, err
	}

	return &File{Path: path, Recipes: defs}, nil
}

// validate checks the parts of a definition that linking does not.
func validate(defs []Definition) error {
	var result *multierror.Error

	for _, d := range defs {
		for i, line := range d.Run {
			if strings.TrimSpace(line) == "" {
				result = multierror.Append(result, fmt.Errorf("recipe '%s' run line %d: %w", d.Name, i+1, ErrEmptyRunLine))
			}
		}
	}

	return result.ErrorOrNil()
}
