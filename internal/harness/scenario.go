package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of Real operations with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tolerance overrides the relative tolerance used by approx_equal and
	// approx expectations. Zero means the harness default.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Steps are executed in order. Each step's result can be referenced by
	// later steps as $N (1-based).
	Steps []Step `yaml:"steps"`
}

// Step applies one operation.
type Step struct {
	// Op is the operation name (see Operations).
	Op string `yaml:"op"`

	// Args are Real literals, "unset", or $N references to earlier results.
	Args []string `yaml:"args"`

	// Expect specifies the expected outcome.
	// If nil, the step only contributes to the trace.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
// Only the fields that are set are checked.
type Expect struct {
	// Kind is the expected result variant.
	Kind string `yaml:"kind,omitempty"`

	// Text is the expected rendered result.
	Text string `yaml:"text,omitempty"`

	// Approx is compared against the result as a float within tolerance.
	Approx *float64 `yaml:"approx,omitempty"`

	// Error is the expected error code. When set, the step must fail.
	Error string `yaml:"error,omitempty"`
}

// UnsetArg is the argument literal for an Unset Real.
const UnsetArg = "unset"

var (
	schemaOnce     sync.Once
	compiledSchema *schema
	schemaErr      error
)

func scenarioSchemaValue() (*schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = compileSchema()
	})
	return compiledSchema, schemaErr
}

// LoadScenario reads and parses a scenario file.
// Files ending in .cue are compiled as CUE; anything else is read as YAML.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or references results that do not exist yet.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	if filepath.Ext(path) == ".cue" {
		return ParseCUEScenario(path, data)
	}
	return ParseScenario(data)
}

// ParseScenario parses a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	s, err := scenarioSchemaValue()
	if err != nil {
		return nil, fmt.Errorf("failed to compile scenario schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid scenario: document is empty")
	}
	if err := s.validateDocument(doc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return decodeScenario(data)
}

// ParseCUEScenario parses a CUE scenario source. filename is used for
// error positions only.
func ParseCUEScenario(filename string, src []byte) (*Scenario, error) {
	s, err := scenarioSchemaValue()
	if err != nil {
		return nil, fmt.Errorf("failed to compile scenario schema: %w", err)
	}

	v, err := s.compileDocument(filename, src)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// JSON is a subset of YAML, so the concrete value goes through the
	// same strict decoder.
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export scenario: %w", err)
	}
	return decodeScenario(data)
}

func decodeScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml, .yml and .cue scenario in dir, sorted by
// file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml", ".cue":
		default:
			continue
		}

		path := filepath.Join(dir, entry.Name())
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks what the schema cannot: arity and references.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be positive")
	}

	for i, step := range s.Steps {
		arity, ok := Arity(step.Op)
		if !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if len(step.Args) != arity {
			return fmt.Errorf("steps[%d]: %s takes %d argument(s), got %d", i, step.Op, arity, len(step.Args))
		}

		for j, arg := range step.Args {
			if !strings.HasPrefix(arg, "$") {
				continue
			}
			ref, err := strconv.Atoi(arg[1:])
			if err != nil || ref < 1 {
				return fmt.Errorf("steps[%d].args[%d]: invalid reference %q", i, j, arg)
			}
			if ref > i {
				return fmt.Errorf("steps[%d].args[%d]: %s refers to a step that has not run", i, j, arg)
			}
		}

		if err := validateExpect(i, step.Expect); err != nil {
			return err
		}
	}

	return nil
}

func validateExpect(index int, e *Expect) error {
	if e == nil {
		return nil
	}
	if e.Error != "" && (e.Kind != "" || e.Text != "" || e.Approx != nil) {
		return fmt.Errorf("steps[%d].expect: error cannot be combined with kind, text or approx", index)
	}
	if e.Error == "" && e.Kind == "" && e.Text == "" && e.Approx == nil {
		return fmt.Errorf("steps[%d].expect: at least one of kind, text, approx or error is required", index)
	}
	return nil
}
