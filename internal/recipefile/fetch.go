// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package recipefile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/brec/internal/ctxlog"
)

// ErrGetRecipeFile is returned when a remote recipe file cannot be fetched.
var ErrGetRecipeFile = errors.New("failed to get recipe file")

// Resolve returns a local path for src.
// A path that exists on FsFactory's filesystem is returned unchanged. Anything
// else is treated as a go-getter URL and downloaded into a temporary directory,
// in which case cleanup removes it. cleanup is never nil.
func Resolve(ctx context.Context, src string) (path string, cleanup func(), err error) {
	cleanup = func() {}

	if src == "" {
		return "", cleanup, ErrGetRecipeFile
	}

	if _, err := FsFactory().Stat(src); err == nil {
		return src, cleanup, nil
	}

	tmpDir, err := os.MkdirTemp("", "brec-getter-*")
	if err != nil {
		return "", cleanup, errors.Join(ErrGetRecipeFile, err)
	}

	cleanup = func() {
		_ = os.RemoveAll(tmpDir)
	}

	path, err = fetch(ctx, src, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return path, cleanup, nil
}

// fetch downloads src below tmpDir and returns the path of the recipe file.
// A source with a subdirectory is fetched as a directory, the file being the
// last element of the subdirectory. Anything else is fetched as a single file.
func fetch(ctx context.Context, src, tmpDir string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Join(ErrGetRecipeFile, err)
	}

	req := &getter.Request{
		Src:     src,
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	dirSrc, fileName, ok := splitRemoteFile(src)
	if ok {
		req.Src = dirSrc
		req.Dst = filepath.Join(tmpDir, "src")
	} else {
		name, _, _ := strings.Cut(src, "?")

		fileName = path.Base(name)
		if fileName == "." || fileName == "/" {
			return "", fmt.Errorf("%w: no file name in %s", ErrGetRecipeFile, src)
		}

		req.GetMode = getter.ModeFile
		req.Dst = filepath.Join(tmpDir, fileName)
	}

	ctxlog.Debug(ctx, "fetching recipe file", "src", req.Src, "file", fileName)

	client := getter.Client{DisableSymlinks: true}

	res, err := client.Get(ctx, req)
	if err != nil {
		return "", errors.Join(ErrGetRecipeFile, err)
	}

	if req.GetMode == getter.ModeFile {
		return res.Dst, nil
	}

	return filepath.Join(res.Dst, fileName), nil
}

// splitRemoteFile separates the recipe file named by a go-getter source from
// the repository or archive holding it, so that
// git::https://host/repo//dir/brec.yaml?ref=v1 becomes
// git::https://host/repo//dir?ref=v1 and brec.yaml.
// It reports false when src has no subdirectory naming a file.
func splitRemoteFile(src string) (string, string, bool) {
	base, subdir := getter.SourceDirSubdir(src)
	if subdir == "" {
		return "", "", false
	}

	dir, file := path.Split(subdir)
	if file == "" {
		return "", "", false
	}

	if dir = strings.TrimSuffix(dir, "/"); dir != "" {
		u, query, hasQuery := strings.Cut(base, "?")

		base = u + "//" + dir
		if hasQuery {
			base += "?" + query
		}
	}

	return base, file, true
}
