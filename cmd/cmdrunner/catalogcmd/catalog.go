// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalogcmd contains the catalog command and its list, init and validate subcommands.
package catalogcmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/color"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	catalogFlag = "catalog"
	forceFlag   = "force"
	schemaFlag  = "schema"
	cliExitStr  = ""
)

// ErrCatalogExists is returned by init when the file exists and --force is not given.
var ErrCatalogExists = errors.New("catalog file already exists, use --force to overwrite")

func catalogPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:      catalogFlag,
		Aliases:   []string{"c"},
		Usage:     "Catalog file, YAML or HCL (.hcl). Supports go-getter syntax for list and validate.",
		Value:     catalog.DefaultPath,
		TakesFile: true,
		OnlyOnce:  true,
	}
}

// CatalogCmd groups the catalog management commands.
var CatalogCmd = &cli.Command{
	Name:  "catalog",
	Usage: "Manage the command catalog",
	Commands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "List the command selectors of the catalog",
			Flags:  []cli.Flag{catalogPathFlag()},
			Action: listAction,
		},
		{
			Name:  "init",
			Usage: "Write the default catalog",
			Flags: []cli.Flag{
				catalogPathFlag(),
				&cli.BoolFlag{
					Name:     forceFlag,
					Usage:    "Overwrite an existing file",
					OnlyOnce: true,
				},
			},
			Action: initAction,
		},
		{
			Name:  "validate",
			Usage: "Check the catalog for errors",
			Flags: []cli.Flag{
				catalogPathFlag(),
				&cli.BoolFlag{
					Name:     schemaFlag,
					Usage:    "Print the JSON schema of YAML catalogs instead",
					OnlyOnce: true,
				},
			},
			Action: validateAction,
		},
	},
}

func exit(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	ctxlog.Error(ctx, err.Error())

	return cli.Exit(cliExitStr, 1)
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	return exit(ctx, List(ctx, cmd.String(catalogFlag), cmd.Writer))
}

func initAction(ctx context.Context, cmd *cli.Command) error {
	return exit(ctx, Init(cmd.String(catalogFlag), cmd.Bool(forceFlag)))
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool(schemaFlag) {
		_, err := cmd.Writer.Write(catalog.Schema())
		return exit(ctx, err)
	}

	return exit(ctx, Validate(ctx, cmd.String(catalogFlag), cmd.Writer))
}

// List writes every group and its commands.
func List(ctx context.Context, path string, w io.Writer) error {
	c, err := catalog.Load(ctx, path)
	if err != nil {
		return err
	}

	for _, g := range c {
		fmt.Fprintln(w, color.Colorize(g.Name, color.Bold, color.FgCyan)) //nolint:errcheck

		for _, t := range g.Templates {
			fmt.Fprintf(w, "  %s%s%s  %s\n", g.Name, catalog.SelectorSeparator, t.Name, //nolint:errcheck
				color.Colorize(t.Command, color.FgHiBlack))
		}
	}

	return nil
}

// Init writes the default catalog to path.
func Init(path string, force bool) error {
	exists, err := afero.Exists(catalog.FsFactory(), path)
	if err != nil {
		return err
	}

	if exists && !force {
		return fmt.Errorf("%w: %s", ErrCatalogExists, path)
	}

	return catalog.Save(path, catalog.Default())
}

// Validate loads the catalog without creating it and reports the result.
func Validate(ctx context.Context, path string, w io.Writer) error {
	data, err := catalog.ReadSource(ctx, path)
	if err != nil {
		return errors.Join(catalog.ErrLoad, err)
	}

	c, err := catalog.Decode(path, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s: %d groups, %d commands\n", //nolint:errcheck
		color.Colorize("✓", color.FgGreen), path, len(c), len(c.Selectors()))

	return nil
}
