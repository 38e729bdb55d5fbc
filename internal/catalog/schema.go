// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://github.com/20142995/command-runner/catalog.schema.json"

// ErrSchema is returned when a YAML catalog does not match the catalog schema.
var ErrSchema = errors.New("catalog does not match schema")

//go:embed schemas/catalog.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding embedded schema: %w", err)
	}

	return c.Compile(schemaURL)
})

// Schema returns the JSON schema used to validate YAML catalogs.
func Schema() []byte {
	return schemaJSON
}

// validateSchema checks a YAML document against the catalog schema.
func validateSchema(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return errors.Join(ErrSchema, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(j))
	if err != nil {
		return errors.Join(ErrSchema, err)
	}

	if err := sch.Validate(inst); err != nil {
		return errors.Join(ErrSchema, err)
	}

	return nil
}
