package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/prooffile"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hilbert version "+Version+"\n", out)
}

func TestTautology(t *testing.T) {
	fol.FreshNames.Reset()
	out, err := run(t, "tautology", "(R(c)->R(c))")
	require.NoError(t, err)
	assert.Contains(t, out, "(R(c)->R(c))")

	out, err = run(t, "tautology", "(R(c)->Q(c))")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "(R(c)->Q(c)) is not a tautology; counterexample: R(c)=true, Q(c)=false\n", out)

	_, err = run(t, "tautology", "(R(c)->")
	assert.ErrorContains(t, err, "could not parse formula")
}

func TestSkeleton(t *testing.T) {
	fol.FreshNames.Reset()
	out, err := run(t, "skeleton", "(Ax[R(x)]->Ax[R(x)])")
	require.NoError(t, err)
	assert.Equal(t, "(z1->z1)\n  z1: Ax[R(x)]\ntautology: true\n", out)
}

func TestTheorem(t *testing.T) {
	out, err := run(t, "theorem")
	require.NoError(t, err)
	assert.Equal(t, theoremNames(), strings.Fields(out))

	out, err = run(t, "theorem", "syllogism")
	require.NoError(t, err)
	p, err := prooffile.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, p.IsValid())

	_, err = run(t, "theorem", "pythagoras")
	assert.ErrorContains(t, err, `unknown theorem "pythagoras"`)
}

const testModel = `universe: [0, 1]
constants: {c: 0}
relations:
  R: [[0]]
functions:
  f:
    - {args: [0], value: 1}
    - {args: [1], value: 0}
`

func TestEval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testModel), 0o644))

	out, err := run(t, "eval", "--model", path, "R(c)", "R(f(c))", "f(f(c))=c")
	require.NoError(t, err)
	assert.Equal(t, "R(c): true\nR(f(c)): false\nf(f(c))=c: true\n", out)

	out, err = run(t, "eval", "--model", path, "--eliminate", "R(f(c))")
	require.NoError(t, err)
	assert.Contains(t, out, "without functions and equality:")
	assert.Equal(t, 2, strings.Count(out, ": false"))

	_, err = run(t, "eval", "--model", filepath.Join(t.TempDir(), "missing.yaml"), "R(c)")
	assert.Error(t, err)
	_, err = run(t, "eval", "R(c)")
	assert.ErrorContains(t, err, "model")
}

func TestVerify(t *testing.T) {
	valid := filepath.Join("prooffile", "testdata", "syllogism.proof.yaml")
	out, err := run(t, "verify", valid)
	require.NoError(t, err)
	assert.Equal(t, valid+": valid (5 lines, Mortal(aristotle))\n", out)

	broken := filepath.Join("prooffile", "testdata", "broken.proof.yaml")
	out, err = run(t, "verify", valid, broken)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, broken+": invalid (3 lines, Ax[R(c)])")
	assert.Contains(t, out, "  line 1 (ug): ")

	_, err = run(t, "verify", "nowhere.proof.yaml")
	assert.ErrorContains(t, err, "no such file")
}
