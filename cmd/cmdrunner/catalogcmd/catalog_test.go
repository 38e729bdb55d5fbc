// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalogcmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/color"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&catalog.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	return fs
}

func TestInit(t *testing.T) {
	fs := memFs(t)

	require.NoError(t, Init("conf/commands.yaml", false))

	ok, err := afero.Exists(fs, "conf/commands.yaml")
	require.NoError(t, err)
	assert.True(t, ok)

	require.ErrorIs(t, Init("conf/commands.yaml", false), ErrCatalogExists)
	require.NoError(t, Init("conf/commands.yaml", true))
}

func TestInit_HCL(t *testing.T) {
	fs := memFs(t)

	require.NoError(t, Init("commands.hcl", false))

	data, err := afero.ReadFile(fs, "commands.hcl")
	require.NoError(t, err)
	assert.Contains(t, string(data), `group "IP信息"`)
}

func TestList(t *testing.T) {
	memFs(t)

	var buf bytes.Buffer

	require.NoError(t, List(context.Background(), "commands.yaml", &buf))

	out := color.Strip(buf.String())
	assert.Contains(t, out, "IP信息\n")
	assert.Contains(t, out, "  IP信息/Ping  ping -c 4 {target}\n")
	assert.Contains(t, out, "  域名信息/Dig  dig {target}\n")
}

func TestValidate(t *testing.T) {
	fs := memFs(t)

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "valid",
			content: "G:\n  - name: Echo\n    command: echo {target}\n",
		},
		{
			name:    "malformed placeholder",
			content: "G:\n  - name: Echo\n    command: echo {host}\n",
			wantErr: catalog.ErrMalformedTemplate,
		},
		{
			name:    "schema violation",
			content: "G:\n  - name: Echo\n",
			wantErr: catalog.ErrLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, afero.WriteFile(fs, "c.yaml", []byte(tt.content), 0o600))

			var buf bytes.Buffer

			err := Validate(context.Background(), "c.yaml", &buf)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, buf.String())

				return
			}

			require.NoError(t, err)
			assert.Contains(t, color.Strip(buf.String()), "c.yaml: 1 groups, 1 commands")
		})
	}

	err := Validate(context.Background(), "missing.yaml", &bytes.Buffer{})
	require.ErrorIs(t, err, catalog.ErrLoad)

	ok, _ := afero.Exists(fs, "missing.yaml")
	assert.False(t, ok, "validate never creates the catalog")
}
