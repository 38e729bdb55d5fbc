// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// ErrParseHCL is returned when an HCL catalog cannot be parsed.
var ErrParseHCL = errors.New("failed to parse HCL catalog")

// hclFile is the HCL layout of a catalog:
//
//	group "IP信息" {
//	  template "Ping" {
//	    command = "ping -c 4 {target}"
//	  }
//	}
type hclFile struct {
	Groups []hclGroup `hcl:"group,block"`
}

type hclGroup struct {
	Name      string        `hcl:"name,label"`
	Templates []hclTemplate `hcl:"template,block"`
}

type hclTemplate struct {
	Name    string `hcl:"name,label"`
	Command string `hcl:"command"`
}

// evalContext exposes the process environment as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func decodeHCL(filename string, data []byte) (Catalog, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParseHCL, multierror.Append(nil, diags.Errs()...))
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &f); diags.HasErrors() {
		return nil, errors.Join(ErrParseHCL, multierror.Append(nil, diags.Errs()...))
	}

	c := make(Catalog, 0, len(f.Groups))

	for _, g := range f.Groups {
		group := Group{Name: g.Name, Templates: make([]Template, 0, len(g.Templates))}
		for _, t := range g.Templates {
			group.Templates = append(group.Templates, Template{Name: t.Name, Command: t.Command})
		}

		c = append(c, group)
	}

	return c, nil
}

func encodeHCL(c Catalog) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, g := range c {
		if i > 0 {
			body.AppendNewline()
		}

		gb := body.AppendNewBlock("group", []string{g.Name}).Body()

		for _, t := range g.Templates {
			tb := gb.AppendNewBlock("template", []string{t.Name}).Body()
			tb.SetAttributeValue("command", cty.StringVal(t.Command))
		}
	}

	return f.Bytes()
}
