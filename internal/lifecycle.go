package internal

import (
	"fmt"
	"log/slog"
	"time"
)

// Lifecycle phase names, in execution order.
const (
	phaseBegin  = "begin"
	phaseAuto   = "auto"
	phaseAction = "action"
	phaseEnd    = "end"
)

// Lifecycle executes the fixed per-request phase sequence:
// begin, the auto chain, the resolved action, then end.
//
// Phases run strictly in order. A phase that fails (returned error,
// recovered panic, raised stop flag, or anything already in the error
// list) halts the remaining sequence; the end phase is driven separately
// by the surrounding request handler and always runs once reached.
type Lifecycle struct {
	registry *Registry
	logger   *slog.Logger
}

// NewLifecycle creates a lifecycle runner over the given registry.
func NewLifecycle(registry *Registry, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{registry: registry, logger: logger}
}

// Run executes begin, the auto chain and the action phase for a resolved
// request, short-circuiting on the first failure.
func (l *Lifecycle) Run(c *requestContext) {
	if !l.runBegin(c) {
		return
	}
	if !l.runAuto(c) {
		return
	}
	l.runAction(c)
}

// Finalize executes the end phase. Callers invoke it after Run regardless
// of earlier failures; it is the cleanup/finalization hook.
func (l *Lifecycle) Finalize(c *requestContext) {
	rec := l.registry.privateAction(c.Namespace(), actionEnd)
	if rec == nil {
		return
	}
	l.execute(c, phaseEnd, rec, c.args)
}

// runBegin executes the most specific begin override for the namespace.
func (l *Lifecycle) runBegin(c *requestContext) bool {
	rec := l.registry.privateAction(c.Namespace(), actionBegin)
	if rec == nil {
		return !c.failed()
	}
	return l.execute(c, phaseBegin, rec, c.args) && !c.failed()
}

// runAuto executes every auto action along the namespace chain, root
// first. Any single auto failure stops the chain and the request.
func (l *Lifecycle) runAuto(c *requestContext) bool {
	for _, rec := range l.registry.autoChain(c.Namespace()) {
		if !l.execute(c, phaseAuto, rec, c.args) || c.failed() {
			return false
		}
	}
	return true
}

// runAction gates the resolved action on its role requirements and
// executes it with the behavior chain applied.
func (l *Lifecycle) runAction(c *requestContext) {
	rec := c.action
	if rec == nil {
		return
	}

	if roles := rec.RequiredRoles(); len(roles) > 0 && !c.CheckRoles(roles...) {
		c.AddError(fmt.Errorf("%w: %s requires roles %v", ErrAuthorizationDenied, rec.ReversePath(), roles))
		l.logger.WarnContext(c, "authorization denied",
			slog.String("action", rec.ReversePath()),
			slog.Any("roles", roles),
		)
		return
	}

	l.execute(c, phaseAction, rec, c.args)
}

// execute runs one action under a phase, recovering panics into the error
// list and recording the phase duration. Returns false on failure.
func (l *Lifecycle) execute(c *requestContext, phase string, rec *ActionRecord, args []string) (ok bool) {
	start := time.Now()
	defer func() {
		c.recordTiming(phase+" "+rec.ReversePath(), time.Since(start))
	}()

	defer func() {
		if r := recover(); r != nil {
			c.AddError(&PhaseError{Phase: phase, Err: fmt.Errorf("panic: %v", r)})
			l.logger.ErrorContext(c, "phase panicked",
				slog.String("phase", phase),
				slog.String("action", rec.ReversePath()),
				slog.Any("panic", r),
			)
			ok = false
		}
	}()

	if err := rec.Execute(c, args...); err != nil {
		c.AddError(&PhaseError{Phase: phase, Err: err})
		l.logger.ErrorContext(c, "phase failed",
			slog.String("phase", phase),
			slog.String("action", rec.ReversePath()),
			slog.Any("error", err),
		)
		return false
	}
	return !c.Stopped()
}
