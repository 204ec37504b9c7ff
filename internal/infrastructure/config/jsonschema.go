package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFileName = "config.schema.json"

// JSONSchema returns the JSON schema of Config.
func JSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.FieldNameTag = "toml"
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/dragkit/config.schema.json"
	schema.Title = "dragkit configuration"
	schema.Description = "Configuration schema for dragkit, a drag-and-drop orchestration engine"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// WriteSchemaFile writes config.schema.json into dir and returns its path.
func WriteSchemaFile(dir string) (string, error) {
	data, err := JSONSchema()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, schemaFileName)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return path, nil
}
