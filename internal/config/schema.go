package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON Schema describing valid configuration files.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "sqlite-glance configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "limit": {
      "type": "integer",
      "minimum": 1,
      "description": "Default maximum number of rows shown in table view"
    },
    "hidden": {
      "type": "boolean",
      "description": "Include SQLite internal objects in output and completion"
    },
    "log_level": {
      "type": "string",
      "enum": ["debug", "info", "warn", "error"],
      "description": "Diagnostic log verbosity"
    },
    "color": {
      "type": "boolean",
      "description": "Enable styled terminal output"
    }
  }
}`

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate checks a config file against the embedded schema.
func Validate(path string) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	doc, err := json.Marshal(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("failed to encode config for validation: %w", err)
	}

	schemaResult, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(Schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	for _, desc := range schemaResult.Errors() {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}

	return result, nil
}
