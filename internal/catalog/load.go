// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

const (
	hclExt       = ".hcl"
	dirPerm      = 0o755
	filePerm     = 0o644
	yamlIndent   = 2
	queryPrefix  = "?"
	getterPrefix = "::"
)

var (
	// ErrLoad is returned when a catalog cannot be read or decoded.
	ErrLoad = errors.New("failed to load command catalog")
	// ErrSave is returned when a catalog cannot be written.
	ErrSave = errors.New("failed to save command catalog")
)

// DefaultPath is the catalog file used when none is given.
const DefaultPath = "commands.yaml"

// Load reads the catalog at src.
//
// A local file that does not exist is created with the default catalog, which is then returned.
// Remote sources use go-getter syntax and are never created.
// Files ending in .hcl are decoded as HCL, everything else as YAML.
func Load(ctx context.Context, src string) (Catalog, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case IsRemote(src):
		data, err = Fetch(ctx, src)
		if err != nil {
			return nil, errors.Join(ErrLoad, err)
		}
	default:
		fs := FsFactory()

		exists, existsErr := afero.Exists(fs, src)
		if existsErr != nil {
			return nil, errors.Join(ErrLoad, existsErr)
		}

		if !exists {
			c := Default()
			if err := Save(src, c); err != nil {
				return nil, err
			}

			ctxlog.Info(ctx, "created default command catalog", "path", src)

			return c, nil
		}

		data, err = afero.ReadFile(fs, src)
		if err != nil {
			return nil, errors.Join(ErrLoad, err)
		}
	}

	c, err := Decode(src, data)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "loaded command catalog", "path", src, "groups", len(c))

	return c, nil
}

// Decode parses and validates catalog content. The name decides the format.
func Decode(name string, data []byte) (Catalog, error) {
	var (
		c   Catalog
		err error
	)

	if isHCL(name) {
		c, err = decodeHCL(name, data)
	} else {
		c, err = decodeYAML(data)
	}

	if err != nil {
		return nil, errors.Join(ErrLoad, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Encode renders the catalog in the format chosen by name.
func Encode(name string, c Catalog) ([]byte, error) {
	if isHCL(name) {
		return encodeHCL(c), nil
	}

	return encodeYAML(c)
}

// Save writes the catalog to path, creating parent directories.
func Save(path string, c Catalog) error {
	data, err := Encode(path, c)
	if err != nil {
		return errors.Join(ErrSave, err)
	}

	fs := FsFactory()

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, dirPerm); err != nil {
			return errors.Join(ErrSave, err)
		}
	}

	if err := afero.WriteFile(fs, path, data, filePerm); err != nil {
		return errors.Join(ErrSave, err)
	}

	return nil
}

func decodeYAML(data []byte) (Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, err
	}

	c := make(Catalog, 0, len(ms))

	for _, item := range ms {
		raw, err := yaml.Marshal(item.Value)
		if err != nil {
			return nil, err
		}

		var templates []Template
		if err := yaml.Unmarshal(raw, &templates); err != nil {
			return nil, fmt.Errorf("group %v: %w", item.Key, err)
		}

		c = append(c, Group{Name: fmt.Sprint(item.Key), Templates: templates})
	}

	return c, nil
}

func encodeYAML(c Catalog) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(c))
	for _, g := range c {
		ms = append(ms, yaml.MapItem{Key: g.Name, Value: g.Templates})
	}

	return yaml.MarshalWithOptions(ms, yaml.Indent(yamlIndent), yaml.IndentSequence(true))
}

// isHCL checks the extension of a local path or the path part of a getter URL.
func isHCL(name string) bool {
	if _, after, ok := strings.Cut(name, getterPrefix); ok {
		name = after
	}

	if u, err := url.Parse(name); err == nil && u.Scheme != "" {
		return strings.EqualFold(path.Ext(u.Path), hclExt)
	}

	name, _, _ = strings.Cut(name, queryPrefix)

	return strings.EqualFold(filepath.Ext(name), hclExt)
}
