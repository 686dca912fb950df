// Package config loads and validates a Houdini run configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SolverConfig describes how to launch and talk to the solver subprocess
// (spec.md §4.B/§4.D).
type SolverConfig struct {
	Command          string   `json:"command" yaml:"command"`
	Args             []string `json:"args,omitempty" yaml:"args,omitempty"`
	Verbosity        int      `json:"verbosity" yaml:"verbosity"`
	Z3               bool     `json:"z3" yaml:"z3"`
	RLimitOptionName string   `json:"rlimit_option_name,omitempty" yaml:"rlimit_option_name,omitempty"`
	CheckTimeoutMS   int      `json:"check_timeout_ms,omitempty" yaml:"check_timeout_ms,omitempty"`
	ControlFlowConst int      `json:"control_flow_constant,omitempty" yaml:"control_flow_constant,omitempty"`
}

// HoudiniConfig toggles the inference loop's optional behavior (spec.md §4.F).
type HoudiniConfig struct {
	CrossDependenciesEnabled bool     `json:"cross_dependencies_enabled" yaml:"cross_dependencies_enabled"`
	UnsatCoreEnabled         bool     `json:"unsat_core_enabled" yaml:"unsat_core_enabled"`
	ReverseInitialOrder      bool     `json:"reverse_initial_order" yaml:"reverse_initial_order"`
	DenyImplementations      []string `json:"deny_implementations,omitempty" yaml:"deny_implementations,omitempty"`
	DenyCandidates           []string `json:"deny_candidates,omitempty" yaml:"deny_candidates,omitempty"`
}

// LogConfig names where the session transcript and process logs land.
type LogConfig struct {
	TranscriptDir string `json:"transcript_dir,omitempty" yaml:"transcript_dir,omitempty"`
	ProcessLogDir string `json:"process_log_dir,omitempty" yaml:"process_log_dir,omitempty"`
}

// RunConfig is the top-level decoded run-configuration document.
type RunConfig struct {
	Version int           `json:"version" yaml:"version"`
	Solver  SolverConfig  `json:"solver" yaml:"solver"`
	Houdini HoudiniConfig `json:"houdini,omitempty" yaml:"houdini,omitempty"`
	Logs    LogConfig     `json:"logs,omitempty" yaml:"logs,omitempty"`
}

// LoadRunConfig reads, decodes, defaults, schema-validates, and semantically
// validates a run configuration file, following the teacher's
// load-decode-default-validate pipeline.
func LoadRunConfig(path string) (*RunConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg RunConfig
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := decodeJSONStrict(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode json: %w", err)
		}
	default:
		if err := decodeYAMLStrict(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := ValidateSchema(b, ext); err != nil {
		return nil, fmt.Errorf("config: schema validation: %w", err)
	}
	if err := validateSemantics(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func decodeJSONStrict(b []byte, cfg *RunConfig) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return fmt.Errorf("multiple top-level values are not allowed")
		}
		return err
	}
	return nil
}

func decodeYAMLStrict(b []byte, cfg *RunConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return fmt.Errorf("multiple documents are not allowed")
		}
		return err
	}
	return nil
}

func applyDefaults(cfg *RunConfig) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Solver.RLimitOptionName == "" {
		cfg.Solver.RLimitOptionName = "rlimit"
	}
	if cfg.Logs.TranscriptDir == "" {
		cfg.Logs.TranscriptDir = "."
	}
}

func validateSemantics(cfg *RunConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Solver.Command) == "" {
		return fmt.Errorf("solver.command is required")
	}
	if cfg.Solver.Verbosity < 0 || cfg.Solver.Verbosity > 2 {
		return fmt.Errorf("solver.verbosity must be 0, 1, or 2, got %d", cfg.Solver.Verbosity)
	}
	if cfg.Solver.CheckTimeoutMS < 0 {
		return fmt.Errorf("solver.check_timeout_ms must be >= 0")
	}
	for _, pat := range cfg.Houdini.DenyImplementations {
		if _, err := doublestarValidate(pat); err != nil {
			return fmt.Errorf("houdini.deny_implementations: %w", err)
		}
	}
	for _, pat := range cfg.Houdini.DenyCandidates {
		if _, err := doublestarValidate(pat); err != nil {
			return fmt.Errorf("houdini.deny_candidates: %w", err)
		}
	}
	return nil
}
