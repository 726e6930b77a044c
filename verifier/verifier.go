// Package verifier checks proof files: it expands glob patterns into files, checks them in
// parallel, reports why invalid proofs are invalid, collects Prometheus metrics and can watch
// files to check them again whenever they change.
package verifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/hilbert-prover/hilbert/config"
	"github.com/hilbert-prover/hilbert/explain"
	"github.com/hilbert-prover/hilbert/prooffile"
	"github.com/hilbert-prover/hilbert/proofs"
)

// A Result is the outcome of the verification of a proof file.
type Result struct {
	Path        string
	Proof       *proofs.Proof // nil if the file could not be read
	Valid       bool
	Diagnostics []explain.Diagnostic
	Err         error // Set if the file could not be read or checking was interrupted.
	Duration    time.Duration
}

// Outcome returns OutcomeValid, OutcomeInvalid or OutcomeError.
func (r Result) Outcome() string {
	switch {
	case r.Err != nil:
		return OutcomeError
	case r.Valid:
		return OutcomeValid
	default:
		return OutcomeInvalid
	}
}

// A Verifier checks proof files. It is safe for concurrent use.
type Verifier struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics
}

// New returns a verifier configured by cfg, whose metrics are registered with reg.
// A nil cfg means the default configuration, a nil logger means slog.Default(),
// and a nil reg means metrics are collected but not registered.
func New(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Verifier, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &Verifier{cfg: cfg, logger: logger, metrics: m}, nil
}

// Expand returns the sorted, unique files matching the given patterns, which may use ** to
// match any number of directories. A pattern without any meta character must name an existing file.
// When patterns is empty, the configured patterns are used.
func (v *Verifier) Expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = v.cfg.Verify.Patterns
	}
	seen := make(map[string]bool)
	var res []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			return nil, fmt.Errorf("no such file: %s", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				res = append(res, m)
			}
		}
	}
	sort.Strings(res)
	v.logger.Debug("Expanded patterns", slog.Any("patterns", patterns), slog.Int("files", len(res)))
	return res, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

// Verify reads and checks the proof file at path.
// Checking is interrupted when ctx is done or when the configured timeout expires.
func (v *Verifier) Verify(ctx context.Context, path string) Result {
	start := time.Now()
	if timeout := v.cfg.Verify.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	res := Result{Path: path}
	res.Proof, res.Err = prooffile.ReadFile(path)
	if res.Err == nil {
		res.Diagnostics, res.Err = explain.ExplainContext(ctx, res.Proof)
		if res.Err != nil {
			res.Err = fmt.Errorf("checking %s: %w", path, res.Err)
		}
		res.Valid = res.Err == nil && explain.Valid(res.Diagnostics)
	}
	res.Duration = time.Since(start)
	v.metrics.observe(res)
	v.logger.Debug("Checked proof",
		slog.String("path", path),
		slog.String("outcome", res.Outcome()),
		slog.Duration("duration", res.Duration))
	return res
}

// VerifyAll checks the given files, at most verify.parallelism at a time, and returns their
// results in the same order. Errors reading or checking a file are reported in its result;
// the returned error is only set if ctx is done before all files are checked.
func (v *Verifier) VerifyAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.cfg.Verify.Parallelism)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = v.Verify(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	v.logger.Info("Verification done", slog.Int("files", len(paths)), slog.Int("invalid", countInvalid(results)))
	return results, nil
}

func countInvalid(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Outcome() != OutcomeValid {
			n++
		}
	}
	return n
}

// AllValid returns true iff every result is valid.
func AllValid(results []Result) bool {
	return countInvalid(results) == 0
}

// WriteReport writes a human-readable report of r to w.
// When explain is true, the diagnostics of invalid lines are included.
func WriteReport(w io.Writer, r Result, explain bool) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(w, "%s: error: %v\n", r.Path, r.Err)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: %s (%d lines, %s)\n", r.Path, r.Outcome(), len(r.Proof.Lines), r.Proof.Conclusion); err != nil {
		return err
	}
	if !explain || r.Valid {
		return nil
	}
	for _, d := range r.Diagnostics {
		if d.Valid {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s\n", d); err != nil {
			return err
		}
	}
	return nil
}

// Explain returns whether reports should include diagnostics, as configured.
func (v *Verifier) Explain() bool {
	return v.cfg.ExplainEnabled()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
