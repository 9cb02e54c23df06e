// Package service implements the federated SERVICE adapter: the
// descriptor the engine selects by identifier scheme, the per-call
// evaluable that issues the remote request, and the registry adapters are
// selected from.
package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/c360/semfed/config"
	"github.com/c360/semfed/errors"
	"github.com/c360/semfed/metric"
	"github.com/c360/semfed/plan"
	"github.com/c360/semfed/scheme"
	"github.com/c360/semfed/sparql"
	"github.com/c360/semfed/transport"
)

// Service is a federation adapter for one identifier scheme. It claims
// identifiers carrying its scheme marker and evaluates delegated SPARQL
// fragments against the gateway the marker resolves to.
//
// A Service holds no mutable state; concurrent evaluations are
// independent.
type Service struct {
	name     string
	resolver *scheme.Resolver
	format   sparql.Format
	executor *transport.Executor
	metrics  *metric.Metrics
	logger   *slog.Logger
	client   *http.Client
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches prometheus instruments. Nil metrics disable
// recording.
func WithMetrics(m *metric.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithHTTPClient pins evaluations to a caller-supplied HTTP client
// instead of a per-call one. Intended for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.client = client }
}

// New creates a Service from validated configuration.
func New(cfg config.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, err := sparql.FormatByName(cfg.ResultFormat)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	s := &Service{
		name:     cfg.SchemeMarker,
		resolver: scheme.NewResolver(cfg.SchemeMarker, cfg.GatewayBase),
		format:   format,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.executor = transport.NewExecutor(timeout, s.logger)
	if s.client != nil {
		s.executor.WithClient(s.client)
	}
	return s, nil
}

// Name returns the service name, the scheme marker it claims.
func (s *Service) Name() string {
	return s.name
}

// CanEvaluate reports whether this service claims the given identifier.
// The engine calls this for every candidate service fragment; it is a
// plain prefix test.
func (s *Service) CanEvaluate(identifier string) bool {
	return s.resolver.CanHandle(identifier)
}

// CreateEvaluable binds an identifier and a query fragment into a single
// evaluable unit. No I/O happens here; the network round trip is deferred
// to Evaluable.Evaluate. Identifiers this service does not claim are a
// selection error.
func (s *Service) CreateEvaluable(identifier string, fragment plan.Fragment) (*Evaluable, error) {
	if !s.CanEvaluate(identifier) {
		return nil, errors.WrapUnsupported(errors.ErrUnsupportedIdentifier,
			"Service", "CreateEvaluable", "claim check for "+identifier)
	}
	return &Evaluable{svc: s, identifier: identifier, fragment: fragment}, nil
}

// Evaluable is one bound service call: an identifier plus the delegated
// fragment. It is constructed once per evaluation and carries no state
// beyond those two values.
type Evaluable struct {
	svc        *Service
	identifier string
	fragment   plan.Fragment
}

// Identifier returns the service identifier this evaluable is bound to.
func (e *Evaluable) Identifier() string {
	return e.identifier
}

// AssuredVariables returns the fragment's declared assured variables,
// unchanged. The adapter never narrows them from remote results.
func (e *Evaluable) AssuredVariables() plan.VarSet {
	return e.fragment.AssuredVars()
}

// AllVariables returns every variable the fragment may bind, unchanged.
func (e *Evaluable) AllVariables() plan.VarSet {
	return e.fragment.AllVars()
}

// Explain renders a human-readable summary of the delegated call. It
// performs no network I/O.
func (e *Evaluable) Explain() string {
	return fmt.Sprintf("Service %s {\n%s\n}", e.identifier, e.fragment.Render())
}

// Equal reports structural equality over (required input bindings,
// required unbound outputs, fragment identity term). Two evaluables that
// would issue identical requests compare equal even when constructed
// independently.
func (e *Evaluable) Equal(other *Evaluable) bool {
	if other == nil {
		return false
	}
	return e.fragment.RequiredInputBindings().Equal(other.fragment.RequiredInputBindings()) &&
		e.fragment.RequiredUnboundOutputs().Equal(other.fragment.RequiredUnboundOutputs()) &&
		e.fragment.IdentityTerm() == other.fragment.IdentityTerm()
}

// Hash returns a hash consistent with Equal.
func (e *Evaluable) Hash() uint64 {
	h := fnv.New64a()
	for _, part := range []uint64{
		e.fragment.RequiredInputBindings().Hash(),
		e.fragment.RequiredUnboundOutputs().Hash(),
	} {
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(part >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	_, _ = h.Write([]byte(e.fragment.IdentityTerm()))
	return h.Sum64()
}

// Evaluate runs the delegated call: resolve the identifier, build the
// GET request, execute it, parse the result document, and adapt it into
// a binding stream ordered as the remote rows. This is the only point at
// which network I/O occurs. Exactly one round trip is issued; failures
// surface immediately with their kind and are never retried here.
func (e *Evaluable) Evaluate(ctx context.Context) (sparql.BindingStream, error) {
	start := time.Now()
	evalID := uuid.NewString()
	endpoint := e.svc.resolver.Resolve(e.identifier)
	queryText := e.fragment.Render()

	logger := e.svc.logger.With(
		"service", e.svc.name,
		"evaluation_id", evalID,
		"endpoint", endpoint,
	)

	req, err := transport.BuildRequest(ctx, endpoint, queryText, e.svc.format.MediaType)
	if err != nil {
		return nil, e.fail(logger, err)
	}

	body, err := e.svc.executor.Execute(req)
	if err != nil {
		return nil, e.fail(logger, err)
	}
	defer func() { _ = body.Close() }()

	results, err := sparql.ParseSelect(body, e.svc.format)
	if err != nil {
		return nil, e.fail(logger, err)
	}

	duration := time.Since(start)
	logger.Debug("service evaluation complete",
		"rows", results.Len(), "duration", duration)
	if m := e.svc.metrics; m != nil {
		m.RecordEvaluation(e.svc.name, "ok")
		m.RecordEvaluationDuration(e.svc.name, duration)
		m.RecordRows(e.svc.name, results.Len())
	}

	// Engine fragments always declare their variables; standalone
	// fragments that declare none get every bound variable passed through.
	var requested []string
	if all := e.fragment.AllVars(); all.Len() > 0 {
		requested = all.Names()
	}
	return results.Stream(requested), nil
}

// fail records an evaluation failure and passes the error through
// unmodified.
func (e *Evaluable) fail(logger *slog.Logger, err error) error {
	kind := errors.KindOf(err)
	logger.Warn("service evaluation failed", "kind", kind.String(), "error", err)
	if m := e.svc.metrics; m != nil {
		m.RecordEvaluation(e.svc.name, "error")
		m.RecordError(e.svc.name, kind.String())
	}
	return err
}
