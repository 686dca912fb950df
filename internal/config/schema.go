package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// configSchemaJSON is the JSON Schema every run configuration must satisfy,
// checked before the semantic validation in validateSemantics.
const configSchemaJSON = `{
  "type": "object",
  "required": ["version", "solver"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "solver": {
      "type": "object",
      "required": ["command"],
      "properties": {
        "command": {"type": "string", "minLength": 1},
        "args": {"type": "array", "items": {"type": "string"}},
        "verbosity": {"type": "integer", "minimum": 0, "maximum": 2},
        "z3": {"type": "boolean"},
        "rlimit_option_name": {"type": "string"},
        "check_timeout_ms": {"type": "integer", "minimum": 0},
        "control_flow_constant": {"type": "integer"}
      }
    },
    "houdini": {
      "type": "object",
      "properties": {
        "cross_dependencies_enabled": {"type": "boolean"},
        "unsat_core_enabled": {"type": "boolean"},
        "reverse_initial_order": {"type": "boolean"},
        "deny_implementations": {"type": "array", "items": {"type": "string"}},
        "deny_candidates": {"type": "array", "items": {"type": "string"}}
      }
    },
    "logs": {
      "type": "object",
      "properties": {
        "transcript_dir": {"type": "string"},
        "process_log_dir": {"type": "string"}
      }
    }
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config_schema.json", strings.NewReader(configSchemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile("config_schema.json")
}

// ValidateSchema decodes raw config bytes (in their source format) into a
// generic document and validates it against configSchemaJSON, mirroring the
// teacher's compileSchema/Validate pattern in tool_registry.go.
func ValidateSchema(raw []byte, ext string) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if ext == ".json" {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode for schema check: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode for schema check: %w", err)
		}
	}

	if err := schema.Validate(doc); err != nil {
		return err
	}
	return nil
}
