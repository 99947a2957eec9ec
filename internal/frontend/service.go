// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     frontend
// Description: Front end service shared by the CLI, the TUI and the gRPC
//              server: runs the engine and records every run
// Author:      msto63
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package frontend

import (
	"context"
	"time"

	motelog "github.com/msto63/mote/foundation/core/log"
	"github.com/msto63/mote/foundation/mote"
	moteast "github.com/msto63/mote/foundation/mote/ast"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/pkg/core/cache"
	"github.com/msto63/mote/pkg/core/health"
)

// Operations
const (
	OpTokenize = "tokenize"
	OpParse    = "parse"
)

// probeSource is parsed by the engine health check
const probeSource = `if n < 2 { return n; } else { return fib(n - 1) + fib(n - 2); }`

// Config holds the service dependencies
type Config struct {
	Engine *mote.Engine
	// Store records runs when set
	Store history.Store
	// Cache keeps successful parse results by source hash when set
	Cache  *cache.Cache[*mote.Result]
	Logger *motelog.Logger
}

// Request describes one source text to process
type Request struct {
	Name   string
	Source string
	Origin history.Origin
}

// Outcome is the result of one run. Err holds lexer, parser and limit
// failures; the run itself still counts as processed.
type Outcome struct {
	RunID     string
	Operation string
	Tokens    []moteparser.Token
	Root      *moteast.Node
	Stats     moteast.Stats
	Duration  time.Duration
	Cached    bool
	Err       error
}

// OK reports whether the run succeeded
func (o *Outcome) OK() bool {
	return o.Err == nil
}

// Service runs the engine on behalf of the outer surfaces
type Service struct {
	engine *mote.Engine
	store  history.Store
	cache  *cache.Cache[*mote.Result]
	logger *motelog.Logger
}

// NewService creates a new front end service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = motelog.GetDefault()
	}

	engine := cfg.Engine
	if engine == nil {
		var err error
		engine, err = mote.NewEngine(mote.Options{Logger: logger})
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		engine: engine,
		store:  cfg.Store,
		cache:  cfg.Cache,
		logger: logger.WithField("component", "frontend"),
	}, nil
}

// Engine returns the underlying engine
func (s *Service) Engine() *mote.Engine {
	return s.engine
}

// History returns the run store, nil when runs are not recorded
func (s *Service) History() history.Store {
	return s.store
}

// Tokenize tokenizes a source text. The returned error is only set when
// ctx is done before the run starts.
func (s *Service) Tokenize(ctx context.Context, req Request) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	tokens, err := s.engine.Tokenize(req.Source)
	outcome := &Outcome{
		Operation: OpTokenize,
		Tokens:    tokens,
		Duration:  time.Since(start),
		Err:       err,
	}

	s.record(ctx, req, outcome)
	return outcome, nil
}

// Parse tokenizes and parses a source text. The returned error is only set
// when ctx is done before the run starts.
func (s *Service) Parse(ctx context.Context, req Request) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := &Outcome{Operation: OpParse}
	start := time.Now()
	result, cached, err := s.Analyze(req.Source)
	if err != nil {
		outcome.Err = err
		outcome.Duration = time.Since(start)
	} else {
		outcome.Tokens = result.Tokens
		outcome.Root = result.Root
		outcome.Stats = result.Stats
		outcome.Duration = result.Duration
		outcome.Cached = cached
		if cached {
			outcome.Duration = time.Since(start)
		}
	}

	s.record(ctx, req, outcome)
	return outcome, nil
}

// Analyze parses source without recording a run. Results are served from
// the cache when one is configured; the boolean reports a cache hit. The
// returned tree is shared and must not be modified.
func (s *Service) Analyze(source string) (*mote.Result, bool, error) {
	if s.cache == nil {
		result, err := s.engine.Analyze(source)
		return result, false, err
	}
	return s.cache.GetOrSet(history.HashSource(source), func() (*mote.Result, error) {
		return s.engine.Analyze(source)
	})
}

// record stores the run when a store is configured. Storage failures are
// logged and never fail the run.
func (s *Service) record(ctx context.Context, req Request, outcome *Outcome) {
	fields := motelog.Fields{
		"operation": outcome.Operation,
		"name":      req.Name,
		"origin":    string(req.Origin),
		"ok":        outcome.OK(),
		"cached":    outcome.Cached,
	}
	if outcome.OK() {
		s.logger.Debug("run finished", fields)
	} else {
		s.logger.Debug("run rejected source", fields.Merge(motelog.Err(outcome.Err)))
	}

	if s.store == nil {
		return
	}

	run := &history.Run{
		Origin:      req.Origin,
		Operation:   outcome.Operation,
		Name:        req.Name,
		Source:      req.Source,
		OK:          outcome.OK(),
		ErrorOffset: -1,
		Tokens:      len(outcome.Tokens),
		Nodes:       outcome.Stats.Nodes,
		Depth:       outcome.Stats.Depth,
		Duration:    outcome.Duration,
	}
	if info := Describe(outcome.Err); info != nil {
		run.ErrorCode = info.Code
		run.ErrorMessage = info.Message
		run.ErrorOffset = info.Offset
	}

	// keep recording when the caller gave up on the response
	if err := s.store.Record(context.WithoutCancel(ctx), run); err != nil {
		s.logger.WarnWithErr("failed to record run", err, fields)
		return
	}
	outcome.RunID = run.ID
}

// HealthChecks returns the checks describing this service
func (s *Service) HealthChecks() []health.Checker {
	checks := []health.Checker{
		health.NewChecker("engine", func(ctx context.Context) health.CheckResult {
			root, err := s.engine.Parse(probeSource)
			if err != nil {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			details := map[string]interface{}{"nodes": moteast.Collect(root).Nodes}
			if s.cache != nil {
				stats := s.cache.Stats()
				details["cache_size"] = stats.Size
				details["cache_hit_rate"] = stats.HitRate
			}
			return health.CheckResult{
				Status:  health.StatusHealthy,
				Message: "probe parsed",
				Details: details,
			}
		}),
	}

	if s.store != nil {
		checks = append(checks, health.NewChecker("history", func(ctx context.Context) health.CheckResult {
			if err := s.store.Ping(ctx); err != nil {
				// parsing still works without history
				return health.CheckResult{Status: health.StatusDegraded, Message: err.Error()}
			}
			return health.CheckResult{Status: health.StatusHealthy, Message: "database reachable"}
		}))
	}

	return checks
}
