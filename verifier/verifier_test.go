package verifier

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilbert-prover/hilbert/config"
	"github.com/hilbert-prover/hilbert/prooffile"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/theorems"
)

const brokenProof = `format: "1.0"
assumptions:
  - formula: R(c)
conclusion: Ax[R(c)]
lines:
  - formula: R(c)
    assumption: {formula: R(c)}
  - formula: Ax[R(d)]
    ug: 0
`

func writeProof(t *testing.T, path string, p *proofs.Proof) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, prooffile.Encode(f, p))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// workspace creates a directory with two valid proofs, an invalid one and an unreadable one.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeProof(t, filepath.Join(dir, "syllogism.proof.yaml"), theorems.Syllogism())
	writeProof(t, filepath.Join(dir, "groups", "zero.proof.yaml"), theorems.UniqueZero())
	writeFile(t, filepath.Join(dir, "groups", "broken.proof.yaml"), brokenProof)
	writeFile(t, filepath.Join(dir, "garbage.proof.yaml"), "format: [")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a proof")
	return dir
}

func newVerifier(t *testing.T, reg prometheus.Registerer) *Verifier {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Verify.Parallelism = 2
	v, err := New(cfg, nil, reg)
	require.NoError(t, err)
	return v
}

func TestExpand(t *testing.T) {
	dir := workspace(t)
	v := newVerifier(t, nil)
	files, err := v.Expand([]string{filepath.Join(dir, "**", "*.proof.yaml"), filepath.Join(dir, "syllogism.proof.yaml")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "garbage.proof.yaml"),
		filepath.Join(dir, "groups", "broken.proof.yaml"),
		filepath.Join(dir, "groups", "zero.proof.yaml"),
		filepath.Join(dir, "syllogism.proof.yaml"),
	}, files)

	_, err = v.Expand([]string{filepath.Join(dir, "missing.proof.yaml")})
	assert.Error(t, err)
	files, err = v.Expand([]string{filepath.Join(dir, "*.none")})
	require.NoError(t, err)
	assert.Empty(t, files)
	_, err = v.Expand([]string{filepath.Join(dir, "[")})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	dir := workspace(t)
	v := newVerifier(t, nil)

	r := v.Verify(context.Background(), filepath.Join(dir, "syllogism.proof.yaml"))
	require.NoError(t, r.Err)
	assert.True(t, r.Valid)
	assert.Equal(t, OutcomeValid, r.Outcome())

	r = v.Verify(context.Background(), filepath.Join(dir, "groups", "broken.proof.yaml"))
	require.NoError(t, r.Err)
	assert.False(t, r.Valid)
	assert.Equal(t, OutcomeInvalid, r.Outcome())

	r = v.Verify(context.Background(), filepath.Join(dir, "garbage.proof.yaml"))
	assert.Error(t, r.Err)
	assert.Equal(t, OutcomeError, r.Outcome())
}

func TestVerifyCancelled(t *testing.T) {
	dir := workspace(t)
	v := newVerifier(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := v.Verify(ctx, filepath.Join(dir, "syllogism.proof.yaml"))
	assert.ErrorIs(t, r.Err, context.Canceled)
	assert.False(t, r.Valid)
}

func TestVerifyAllAndMetrics(t *testing.T) {
	dir := workspace(t)
	reg := prometheus.NewRegistry()
	v := newVerifier(t, reg)
	files, err := v.Expand([]string{filepath.Join(dir, "**", "*.proof.yaml")})
	require.NoError(t, err)

	results, err := v.VerifyAll(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, files[i], r.Path)
	}
	assert.Equal(t, []string{OutcomeError, OutcomeInvalid, OutcomeValid, OutcomeValid},
		[]string{results[0].Outcome(), results[1].Outcome(), results[2].Outcome(), results[3].Outcome()})
	assert.False(t, AllValid(results))
	assert.True(t, AllValid(results[2:]))

	assert.Equal(t, 2.0, testutil.ToFloat64(v.metrics.proofs.WithLabelValues(OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(v.metrics.proofs.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(v.metrics.proofs.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(v.metrics.lines.WithLabelValues("ug", "false")))

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, reg))
	assert.Contains(t, buf.String(), "hilbert_proofs_checked_total{outcome=valid} 2")
	assert.Contains(t, buf.String(), "hilbert_proof_check_seconds count=4")

	_, err = New(nil, nil, reg)
	assert.Error(t, err, "metrics cannot be registered twice")
}

func TestWriteReport(t *testing.T) {
	dir := workspace(t)
	v := newVerifier(t, nil)
	path := filepath.Join(dir, "groups", "broken.proof.yaml")
	r := v.Verify(context.Background(), path)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r, true))
	assert.Equal(t, path+": invalid (2 lines, Ax[R(c)])\n"+
		"  line 1 (ug): quantified formula is R(d), but line 0 is R(c)\n"+
		"  proof: last line proves Ax[R(d)], not Ax[R(c)]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteReport(&buf, r, false))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	buf.Reset()
	require.NoError(t, WriteReport(&buf, v.Verify(context.Background(), filepath.Join(dir, "garbage.proof.yaml")), true))
	assert.Contains(t, buf.String(), "garbage.proof.yaml: error: ")
}

func TestWatch(t *testing.T) {
	dir := workspace(t)
	v := newVerifier(t, nil)
	path := filepath.Join(dir, "syllogism.proof.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- v.Watch(ctx, []string{path}, func(r Result) { results <- r })
	}()

	// Rewrite the file until the watcher reports it as invalid: the watcher may not be
	// watching yet, and may see a truncated file.
	deadline := time.After(10 * time.Second)
loop:
	for {
		writeFile(t, path, brokenProof)
		select {
		case r := <-results:
			assert.Equal(t, path, r.Path)
			if r.Outcome() == OutcomeInvalid {
				break loop
			}
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("file change not noticed")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
