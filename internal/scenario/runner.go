package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/helpdesk-sim/internal/api/registry"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// Step is one scripted operation call. WantError, when set, names the
// error code the step must fail with.
type Step struct {
	Op        string         `yaml:"op"`
	Args      map[string]any `yaml:"args"`
	WantError string         `yaml:"want_error"`
}

// Scenario is one scripted tool-calling session.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	Op     string
	Result any
	Err    error
}

// Report summarizes one scenario run.
type Report struct {
	Scenario string
	Results  []StepResult
}

// Parse decodes and validates one YAML scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario has no name")
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	for i, step := range sc.Steps {
		if step.Op == "" {
			return nil, fmt.Errorf("scenario %q: step %d has no op", sc.Name, i+1)
		}
	}
	return &sc, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Runner executes scenarios through the operation registry.
type Runner struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewRunner constructs a runner.
func NewRunner(reg *registry.Registry, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: reg, logger: logger}
}

// Run executes every step in order. A step that errors when no error
// was declared aborts the run, as does a step that succeeds when one
// was; the report covers the steps that actually ran.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	report := &Report{Scenario: sc.Name}
	r.logger.Info("scenario started", zap.String("scenario", sc.Name), zap.Int("steps", len(sc.Steps)))

	for i, step := range sc.Steps {
		args, err := encodeArgs(step.Args)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): encode args: %w", i+1, step.Op, err)
		}

		result, callErr := r.registry.Call(ctx, step.Op, args)
		report.Results = append(report.Results, StepResult{Op: step.Op, Result: result, Err: callErr})

		switch {
		case callErr != nil && step.WantError == "":
			return report, fmt.Errorf("step %d (%s): unexpected error: %w", i+1, step.Op, callErr)
		case callErr != nil:
			if code := util.CodeOf(callErr); code != step.WantError {
				return report, fmt.Errorf("step %d (%s): error code %s, expected %s", i+1, step.Op, code, step.WantError)
			}
			r.logger.Info("step failed as declared",
				zap.String("scenario", sc.Name),
				zap.Int("step", i+1),
				zap.String("op", step.Op),
				zap.String("code", step.WantError))
		case step.WantError != "":
			return report, fmt.Errorf("step %d (%s): expected error %s, got success", i+1, step.Op, step.WantError)
		default:
			r.logger.Info("step completed",
				zap.String("scenario", sc.Name),
				zap.Int("step", i+1),
				zap.String("op", step.Op))
		}
	}

	r.logger.Info("scenario completed", zap.String("scenario", sc.Name), zap.Int("steps", len(report.Results)))
	return report, nil
}

// encodeArgs converts YAML-decoded arguments to the JSON form the
// registry validates.
func encodeArgs(args map[string]any) (json.RawMessage, error) {
	if args == nil {
		return nil, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return data, nil
}
