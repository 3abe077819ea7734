package params

import (
	"slices"

	"go.uber.org/zap"
)

// Orchestrator composes handlers into one validation pipeline and resolves the operation.
// Handler order, cross rule order and operation priority are fixed at construction.
type Orchestrator struct {
	handlers []Handler
	rules    []CrossRule
	priority []OperationRule
	logger   *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a logger for stage-level debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an orchestrator. Handlers are validated in the given order.
func New(handlers []Handler, rules []CrossRule, priority []OperationRule, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		handlers: slices.Clone(handlers),
		rules:    slices.Clone(rules),
		priority: slices.Clone(priority),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Default creates an orchestrator with the six built-in handlers, validated in the order
// core, plan, context, evaluation, database, utility.
func Default(opts ...Option) *Orchestrator {
	core := NewCoreHandler()
	plan := NewPlanHandler()
	ctx := NewContextHandler()
	eval := NewEvaluationHandler()
	db := NewDatabaseHandler()
	util := NewUtilityHandler()
	return New(
		[]Handler{core, plan, ctx, eval, db, util},
		DefaultCrossRules(),
		DefaultPriority(db, eval, plan, util),
		opts...,
	)
}

// WithLogger returns a copy of o that logs to l.
func (o *Orchestrator) WithLogger(l *zap.Logger) *Orchestrator {
	out := *o
	WithLogger(l)(&out)
	return &out
}

// Handlers returns the handlers in validation order.
func (o *Orchestrator) Handlers() []Handler {
	return slices.Clone(o.handlers)
}

// DeclareFlags registers every handler's schema on target.
func (o *Orchestrator) DeclareFlags(target SchemaTarget) {
	for _, h := range o.handlers {
		h.DeclareFlags(target)
	}
}

// Extract runs every handler's extraction against ns.
func (o *Orchestrator) Extract(ns Namespace) Extracted {
	ex := Extracted{}
	for _, h := range o.handlers {
		if v := h.Extract(ns); len(v) > 0 {
			ex[h.ID()] = v
		}
	}
	o.logger.Debug("Extracted flag values", zap.Int("flags", len(ns)), zap.Int("groups", len(ex)))
	return ex
}

// Validate runs handler validation in order, then the cross rules. It returns the first
// failure as a *ValidationError.
func (o *Orchestrator) Validate(ex Extracted) error {
	for _, h := range o.handlers {
		if err := h.Validate(ex[h.ID()]); err != nil {
			verr := attribute(string(h.ID()), err)
			o.logger.Debug("Handler validation failed", zap.String("handler", string(h.ID())), zap.String("field", verr.Field))
			return verr
		}
	}
	for _, rule := range o.rules {
		if err := rule.Check(ex); err != nil {
			verr := attribute(rule.Name, err)
			o.logger.Debug("Cross-handler rule failed", zap.String("rule", rule.Name), zap.String("field", verr.Field))
			return verr
		}
	}
	return nil
}

// ResolveOperation returns the first operation in priority order whose predicate matches,
// or OpHelp.
func (o *Orchestrator) ResolveOperation(ns Namespace) OperationType {
	for _, rule := range o.priority {
		if rule.Requested(ns) {
			return rule.Operation
		}
	}
	return OpHelp
}

// Result is the outcome of one invocation.
type Result struct {
	Values    Extracted
	Operation OperationType
	// Context is set only when validation succeeded and --context was given.
	Context *ContextOptions
	Err     error
}

// OK reports whether validation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Process extracts, validates and resolves ns. The operation is resolved regardless of the
// validation outcome.
func (o *Orchestrator) Process(ns Namespace) Result {
	ex := o.Extract(ns)
	res := Result{
		Values:    ex,
		Operation: o.ResolveOperation(ns),
		Err:       o.Validate(ex),
	}
	if res.Err == nil {
		res.Context = ProjectContext(ex)
	}
	o.logger.Debug("Resolved operation", zap.String("operation", string(res.Operation)), zap.Bool("valid", res.Err == nil))
	return res
}
