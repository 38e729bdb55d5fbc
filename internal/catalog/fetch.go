// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

// ErrFetch is returned when a remote source cannot be retrieved.
var ErrFetch = errors.New("failed to fetch source")

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minimumGetterParts  = 3 // scheme, host and path
	schemeSeparator     = "://"
)

// IsRemote reports whether src uses go-getter syntax rather than a local path.
func IsRemote(src string) bool {
	return strings.Contains(src, getterPrefix) || strings.Contains(src, schemeSeparator)
}

// ReadSource returns the content of a local file or a go-getter source.
func ReadSource(ctx context.Context, src string) ([]byte, error) {
	if IsRemote(src) {
		return Fetch(ctx, src)
	}

	b, err := afero.ReadFile(FsFactory(), src)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return b, nil
}

// Fetch downloads a single file with Hashicorp's go-getter.
//
// Sources with a "//" sub path, such as git::https://host/repo.git//commands.yaml?ref=v1,
// are fetched as a directory and the named file is read from it.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrFetch
	}

	tmpDir, err := os.MkdirTemp("", "cmdrunner-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "file"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	var fileName string

	if dirURL, name := splitSubPath(src); dirURL != "" {
		req.Src = dirURL
		req.Dst = filepath.Join(tmpDir, "dir")
		req.GetMode = getter.ModeDir
		fileName = name
	}

	res, err := cli.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	p := res.Dst
	if fileName != "" {
		p = filepath.Join(res.Dst, fileName)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return b, nil
}

// splitSubPath separates the file named by the last "//" sub path from the getter URL.
// Any ref query is moved onto the returned directory URL.
// Both results are empty when the URL has no usable sub path.
func splitSubPath(src string) (string, string) {
	parts := strings.Split(src, getterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last, ref, _ := strings.Cut(parts[len(parts)-1], getterRefSeparator)

	if last == "" || strings.HasSuffix(last, "/") {
		return "", ""
	}

	fileName := filepath.Base(last)
	dir := filepath.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	dirURL := strings.Join(parts, getterPathSeparator)
	if ref != "" {
		dirURL += getterRefSeparator + ref
	}

	return dirURL, fileName
}
