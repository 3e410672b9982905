package tools

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/permissions"
)

// Gate decides whether a tool of the given kind may run.
type Gate interface {
	Check(kind catalog.Kind, tool string, details string) (*permissions.CheckResult, error)
}

// Observer receives one observation per execution.
type Observer interface {
	ObserveExecution(kind catalog.Kind, status string, duration time.Duration)
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusNoop    = "noop"
)

type Dispatcher struct {
	registry *Registry
	gate     Gate
	observer Observer
}

type Option func(*Dispatcher)

func WithGate(g Gate) Option {
	return func(d *Dispatcher) { d.gate = g }
}

func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs the tool with the collected form values. It always returns a
// Result; panics and errors inside executors become failed results.
func (d *Dispatcher) Execute(ctx context.Context, tool catalog.Descriptor, values Values) (res Result) {
	start := time.Now()
	kind := catalog.KindOf(tool.Action)
	log := logger.FromContext(ctx).With(zap.String("tool", tool.Slug), zap.String("kind", string(kind)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool execution panicked", zap.Any("panic", r))
			res = NewErrorResult(fmt.Sprint(r))
		}

		status := statusOf(res, kind)
		elapsed := time.Since(start)
		if d.observer != nil {
			d.observer.ObserveExecution(kind, status, elapsed)
		}
		log.Info("tool executed",
			zap.String("status", status),
			zap.Duration("duration", elapsed),
			zap.String("error", res.Error))
	}()

	if tool.Action == nil {
		return Result{}
	}

	exec, err := d.registry.Get(kind)
	if err != nil {
		return NewErrorResult(err.Error())
	}

	if ic, ok := exec.(InputChecker); ok {
		if err := ic.CheckInputs(tool, values); err != nil {
			return NewErrorResult(err.Error())
		}
	}

	if d.gate != nil {
		check, err := d.gate.Check(kind, tool.Slug, tool.Name)
		if err != nil {
			return NewErrorResult(err.Error())
		}
		if !check.Allowed {
			return NewErrorResult(fmt.Sprintf("%s tools are disabled: %s", kind, check.Reason))
		}
	}

	return exec.Execute(ctx, tool, values)
}

func statusOf(res Result, kind catalog.Kind) string {
	switch {
	case res.Success:
		return StatusSuccess
	case kind == catalog.KindNone:
		return StatusNoop
	default:
		return StatusError
	}
}
