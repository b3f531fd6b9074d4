package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-sim/internal/observability"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

// Handler executes one named operation against already-validated raw
// JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// OperationInfo describes one registered operation.
type OperationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type operation struct {
	name        string
	description string
	schema      *santhosh.Schema
	handler     Handler
}

// Registry dispatches named operations. Each operation carries a JSON
// schema (draft 7) for its argument object, compiled once at
// registration; Call validates arguments before the handler runs, so
// handlers only ever see structurally sound input.
type Registry struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	ops     map[string]*operation
}

// New constructs an empty registry.
func New(logger *zap.Logger, metrics *observability.Metrics) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger:  logger,
		metrics: metrics,
		ops:     make(map[string]*operation),
	}
}

// Register binds name to handler with the given argument schema.
func (r *Registry) Register(name, description, schemaJSON string, handler Handler) error {
	if _, exists := r.ops[name]; exists {
		return fmt.Errorf("operation %q registered twice", name)
	}
	schema, err := compileSchema([]byte(schemaJSON))
	if err != nil {
		return fmt.Errorf("compile schema for %q: %w", name, err)
	}
	r.ops[name] = &operation{
		name:        name,
		description: description,
		schema:      schema,
		handler:     handler,
	}
	return nil
}

// MustRegister is Register for wiring-time use, where a bad schema is
// a programming error.
func (r *Registry) MustRegister(name, description, schemaJSON string, handler Handler) {
	if err := r.Register(name, description, schemaJSON, handler); err != nil {
		panic(err)
	}
}

// Operations lists every registered operation ordered by name.
func (r *Registry) Operations() []OperationInfo {
	out := make([]OperationInfo, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, OperationInfo{Name: op.name, Description: op.description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call validates args against the operation's schema and runs the
// handler. Missing args count as an empty object. Panics surface as
// INTERNAL_ERROR instead of unwinding into the caller.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (result any, err error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, util.NewValidationError(
			fmt.Sprintf("unknown operation %q", name),
			map[string]any{"operation": name},
		)
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic recovered",
				zap.String("op", name),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			result, err = nil, util.NewInternalError(nil)
		}
		if r.metrics != nil {
			r.metrics.RecordCall(name, time.Since(start))
			if err != nil {
				r.metrics.RecordError(name, util.CodeOf(err))
			}
		}
		if err != nil {
			r.logger.Warn("operation failed",
				zap.String("op", name),
				zap.String("code", util.CodeOf(err)),
				zap.Error(err))
		} else {
			r.logger.Debug("operation completed",
				zap.String("op", name),
				zap.Duration("duration", time.Since(start)))
		}
	}()

	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}
	if err := validateArgs(op.schema, args); err != nil {
		return nil, err
	}
	return op.handler(ctx, args)
}

// ErrorBody renders err in the wire error envelope shape.
func ErrorBody(err error) map[string]any {
	domainErr := util.ToDomainError(err)
	body := map[string]any{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return map[string]any{"error": body}
}

// compileSchema builds a *santhosh.Schema from raw JSON.
func compileSchema(schemaJSON []byte) (*santhosh.Schema, error) {
	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft7
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// validateArgs checks args against a compiled schema. Violations come
// back as VALIDATION_ERROR with the instance locations in the details.
func validateArgs(schema *santhosh.Schema, args json.RawMessage) error {
	var v any
	if err := json.Unmarshal(args, &v); err != nil {
		return util.NewValidationError("arguments must be valid JSON", map[string]any{"cause": err.Error()})
	}
	if err := schema.Validate(v); err != nil {
		var ve *santhosh.ValidationError
		if errors.As(err, &ve) {
			return util.NewValidationError(
				"arguments do not match the operation schema",
				map[string]any{"violations": collectViolations(ve)},
			)
		}
		return util.NewValidationError(err.Error(), nil)
	}
	return nil
}

// collectViolations flattens leaf causes into "location: message"
// strings.
func collectViolations(ve *santhosh.ValidationError) []string {
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, collectViolations(cause)...)
	}
	if len(ve.Causes) == 0 {
		out = append(out, fmt.Sprintf("%s: %s", ve.InstanceLocation, ve.Message))
	}
	return out
}
