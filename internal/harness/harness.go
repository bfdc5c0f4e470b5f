package harness

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/termfixture/internal/build"
	"github.com/roach88/termfixture/internal/console"
	"github.com/roach88/termfixture/internal/scenario"
)

const tracerName = "github.com/roach88/termfixture/internal/harness"

// LegacySourceVersion is recorded when neither the caller nor the console
// supplies a version.
const LegacySourceVersion = "legacy"

// Clock supplies generated_at.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configure a generation run. The zero value is usable.
type Options struct {
	// SourceVersion overrides the recorded renderer version.
	SourceVersion string
	// BaseEnv is the environment every overlay is applied to. Nil means
	// empty.
	BaseEnv map[string]string
	// Clock stamps generated_at. Nil means wall-clock time.
	Clock Clock
	// Logger receives progress. Nil discards.
	Logger *slog.Logger
	// Tracer records one span per run and per scenario. Nil uses the global
	// provider.
	Tracer trace.Tracer
}

// Harness runs scenarios.
//
// Each scenario is captured on its own console; the harness itself holds no
// per-scenario state.
type Harness struct {
	defaults scenario.RenderOptions
	baseEnv  map[string]string
	clock    Clock
	logger   *slog.Logger
	tracer   trace.Tracer
	version  string
}

// New returns a harness rendering against defaults.
func New(defaults scenario.RenderOptions, opts Options) *Harness {
	h := &Harness{
		defaults: defaults,
		baseEnv:  opts.BaseEnv,
		clock:    opts.Clock,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		version:  opts.SourceVersion,
	}
	if h.clock == nil {
		h.clock = systemClock{}
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer(tracerName)
	}
	if h.version == "" {
		h.version = console.Version
	}
	if h.version == "" {
		h.version = LegacySourceVersion
	}
	return h
}

// Generate captures every scenario of cat in order and assembles the
// document. The first failure aborts the run.
func Generate(ctx context.Context, cat *scenario.Catalog, opts Options) (*Document, error) {
	return New(cat.Defaults, opts).Generate(ctx, cat.Scenarios)
}

// Generate captures scenarios in order and assembles the document.
func (h *Harness) Generate(ctx context.Context, scenarios []scenario.Descriptor) (doc *Document, err error) {
	ctx, span := h.tracer.Start(ctx, "termfixture.generate",
		trace.WithAttributes(
			attribute.Int("termfixture.scenarios", len(scenarios)),
			attribute.String("termfixture.source_version", h.version),
		),
	)
	defer func() {
		endSpan(span, err)
	}()

	if err := checkUnique(scenarios); err != nil {
		return nil, err
	}

	doc = &Document{
		SourceVersion: h.version,
		GeneratedAt:   h.clock.Now().UTC(),
		Defaults:      h.defaults,
		Cases:         make([]Case, 0, len(scenarios)),
	}
	for _, d := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := h.Capture(ctx, d)
		if err != nil {
			return nil, err
		}
		doc.Cases = append(doc.Cases, Case{Scenario: d, Expected: c})
	}
	return doc, nil
}

// Capture builds, renders and normalizes one scenario.
func (h *Harness) Capture(ctx context.Context, d scenario.Descriptor) (c Capture, err error) {
	_, span := h.tracer.Start(ctx, "termfixture.capture",
		trace.WithAttributes(
			attribute.String("termfixture.scenario_id", d.ID),
			attribute.String("termfixture.kind", string(d.Kind)),
		),
	)
	defer func() {
		endSpan(span, err)
	}()

	v, err := build.Build(d.Kind, d.Input)
	if err != nil {
		return Capture{}, buildError(d.ID, err)
	}

	x, err := NewExecutionContext(h.defaults, h.baseEnv, d)
	if err != nil {
		return Capture{}, &Error{Code: ErrCodeInvalidInput, ScenarioID: d.ID, Message: "execution context", Err: err}
	}

	raw, err := Render(x, d.Kind, v)
	if err != nil {
		return Capture{}, &Error{Code: ErrCodeRenderFailure, ScenarioID: d.ID, Message: "render", Err: err}
	}
	c = raw.Normalized()

	span.SetAttributes(
		attribute.Int("termfixture.plain_bytes", len(c.Plain)),
		attribute.Int("termfixture.ansi_bytes", len(c.ANSI)),
	)
	h.logger.Debug("scenario captured",
		"id", d.ID,
		"kind", d.Kind,
		"plain_bytes", len(c.Plain),
		"ansi_bytes", len(c.ANSI),
	)
	return c, nil
}

func buildError(id string, err error) error {
	code := ErrCodeInvalidInput
	switch {
	case build.IsUnknownKind(err):
		code = ErrCodeUnknownKind
	case build.IsMissingField(err):
		code = ErrCodeMissingField
	}
	return &Error{Code: code, ScenarioID: id, Message: "build", Err: err}
}

func checkUnique(scenarios []scenario.Descriptor) error {
	seen := make(map[string]bool, len(scenarios))
	for _, d := range scenarios {
		if seen[d.ID] {
			return &Error{Code: ErrCodeDuplicateID, ScenarioID: d.ID, Message: "duplicate scenario id"}
		}
		seen[d.ID] = true
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		var he *Error
		if errors.As(err, &he) {
			span.SetAttributes(attribute.String("termfixture.error_code", string(he.Code)))
		}
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
