package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/freixas/gamma-sub005/internal/engine"
)

// Control files are flat JSON objects mapping control names to their current
// values: booleans for toggles, numbers for ranges and animation frames, and
// integer indices for choices.
const controlsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"additionalProperties": {
		"type": ["boolean", "number"]
	}
}`

var controlsValidator = jsonschema.MustCompileString("controls.schema.json", controlsSchema)

// loadBindings reads and validates a control-values file. An empty path
// yields empty bindings.
func loadBindings(path string) (engine.Bindings, error) {
	if path == "" {
		return engine.Bindings{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading controls file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("controls file %s: %w", path, err)
	}
	if err := controlsValidator.Validate(raw); err != nil {
		return nil, fmt.Errorf("controls file %s: %w", path, err)
	}

	bindings := engine.Bindings{}
	for name, v := range raw.(map[string]any) {
		bindings[name] = v
	}
	return bindings, nil
}
