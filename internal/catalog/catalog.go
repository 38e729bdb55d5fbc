// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid command catalog")
	// ErrUnknownSelector is returned when a selector matches no group or command.
	ErrUnknownSelector = errors.New("no command matches selector")
)

// SelectorSeparator separates group and command names in a selector.
const SelectorSeparator = "/"

// Group is a named, ordered list of command templates.
type Group struct {
	Name      string
	Templates []Template
}

// Catalog is the ordered set of command groups.
type Catalog []Group

// Default returns the built-in catalog that is written when no catalog file exists.
func Default() Catalog {
	return Catalog{
		{
			Name: "IP信息",
			Templates: []Template{
				{Name: "Ping", Command: "ping -c 4 {target}"},
				{Name: "Traceroute", Command: "traceroute {target}"},
			},
		},
		{
			Name: "域名信息",
			Templates: []Template{
				{Name: "Whois", Command: "whois {target}"},
				{Name: "Dig", Command: "dig {target}"},
			},
		},
	}
}

// Group returns the group with the given name.
func (c Catalog) Group(name string) (Group, bool) {
	i := slices.IndexFunc(c, func(g Group) bool { return g.Name == name })
	if i < 0 {
		return Group{}, false
	}

	return c[i], true
}

// Validate checks every group and template, reporting all problems at once.
func (c Catalog) Validate() error {
	var err error

	if len(c) == 0 {
		err = multierror.Append(err, errors.New("catalog has no groups"))
	}

	seen := make(map[string]struct{}, len(c))

	for _, g := range c {
		if g.Name == "" {
			err = multierror.Append(err, errors.New("group without a name"))
		}

		if _, dup := seen[g.Name]; dup {
			err = multierror.Append(err, fmt.Errorf("duplicate group %q", g.Name))
		}

		seen[g.Name] = struct{}{}

		if len(g.Templates) == 0 {
			err = multierror.Append(err, fmt.Errorf("group %q has no commands", g.Name))
		}

		for _, t := range g.Templates {
			if t.Name == "" {
				err = multierror.Append(err, fmt.Errorf("group %q has a command without a name", g.Name))
			}

			if cerr := t.Check(); cerr != nil {
				err = multierror.Append(err, fmt.Errorf("group %q: %w", g.Name, cerr))
			}
		}
	}

	if err != nil {
		return errors.Join(ErrInvalidCatalog, err)
	}

	return nil
}

// Selectors lists a "Group/Name" selector for every template, in catalog order.
func (c Catalog) Selectors() []string {
	var res []string

	for _, g := range c {
		for _, t := range g.Templates {
			res = append(res, g.Name+SelectorSeparator+t.Name)
		}
	}

	return res
}

// Select returns the templates matched by the selectors in catalog order, without duplicates.
// A selector is either "Group/Name", a bare group name (every command of the group)
// or a bare command name (that command in every group).
func (c Catalog) Select(selectors ...string) ([]Template, error) {
	type key struct{ group, name string }

	chosen := make(map[key]struct{})

	var err error

	for _, sel := range selectors {
		matched := false

		group, name, qualified := strings.Cut(sel, SelectorSeparator)

		for _, g := range c {
			for _, t := range g.Templates {
				var ok bool

				switch {
				case qualified:
					ok = g.Name == group && t.Name == name
				default:
					ok = g.Name == sel || t.Name == sel
				}

				if ok {
					chosen[key{g.Name, t.Name}] = struct{}{}
					matched = true
				}
			}
		}

		if !matched {
			err = multierror.Append(err, fmt.Errorf("%w: %q", ErrUnknownSelector, sel))
		}
	}

	if err != nil {
		return nil, err
	}

	var res []Template

	for _, g := range c {
		for _, t := range g.Templates {
			if _, ok := chosen[key{g.Name, t.Name}]; ok {
				res = append(res, t)
			}
		}
	}

	return res, nil
}
