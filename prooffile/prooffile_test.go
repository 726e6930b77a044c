package prooffile

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prover"
	"github.com/hilbert-prover/hilbert/theorems"
)

func keys(schemas []*proofs.Schema) []string {
	res := make([]string, len(schemas))
	for i, s := range schemas {
		res[i] = s.Key()
	}
	return res
}

func TestReadFile(t *testing.T) {
	p, err := ReadFile("testdata/syllogism.proof.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Mortal(aristotle)", p.Conclusion.String())
	assert.Len(t, p.Assumptions, len(prover.Axioms)+2)
	require.Len(t, p.Lines, 5)
	assert.IsType(t, &proofs.MPLine{}, p.Lines[4])
	assert.True(t, p.IsValid())

	p, err = ReadFile("testdata/broken.proof.yaml")
	require.NoError(t, err)
	assert.Len(t, p.Assumptions, 1)
	assert.False(t, p.IsValid())

	_, err = ReadFile("testdata/missing.proof.yaml")
	assert.True(t, os.IsNotExist(err))
}

func TestRoundTrip(t *testing.T) {
	for _, p := range []*proofs.Proof{
		theorems.Syllogism(), theorems.Homework(), theorems.RightNeutral(theorems.Complete),
		proofs.ProveTautology(fol.MustParse("(R(c)->R(c))")),
	} {
		t.Run(p.Conclusion.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, p))
			decoded, err := Decode(&buf)
			require.NoError(t, err)
			assert.True(t, decoded.IsValid())
			assert.True(t, decoded.Conclusion.Equal(p.Conclusion))
			assert.ElementsMatch(t, keys(p.Assumptions), keys(decoded.Assumptions))
			require.Len(t, decoded.Lines, len(p.Lines))
			for i := range p.Lines {
				assert.Equal(t, p.Lines[i].String(), decoded.Lines[i].String())
			}
		})
	}
}

func TestNewDocumentAxioms(t *testing.T) {
	d := NewDocument(theorems.Syllogism())
	assert.True(t, d.Axioms)
	assert.Len(t, d.Assumptions, 2)

	d = NewDocument(proofs.ProveTautology(fol.MustParse("(R(c)->R(c))")))
	assert.False(t, d.Axioms)
	assert.Equal(t, FormatVersion, d.Format)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, doc, err string
	}{
		{"no format", "conclusion: R(c)\nlines: []", "missing format version"},
		{"bad format", "format: one\nconclusion: R(c)", "invalid format version"},
		{"future format", "format: \"2.0\"\nconclusion: R(c)", "unsupported format version 2.0.0"},
		{"unknown field", "format: \"1.0\"\nconclusions: R(c)", "field conclusions not found"},
		{"bad conclusion", "format: \"1.0\"\nconclusion: R(", "conclusion"},
		{"bad template", "format: \"1.0\"\nassumptions: [{formula: \"R(c)\", templates: [f]}]\nconclusion: R(c)", "assumption 0"},
		{"no justification", "format: \"1.0\"\nconclusion: R(c)\nlines: [{formula: R(c)}]", "line 0: expected exactly one justification, got 0"},
		{"two justifications", "format: \"1.0\"\nconclusion: R(c)\nlines: [{formula: R(c), ug: 0, tautology: true}]", "got 2"},
		{"short mp", "format: \"1.0\"\nconclusion: R(c)\nlines: [{formula: R(c), mp: [0]}]", "mp expects 2 line numbers, got 1"},
		{"stray map", "format: \"1.0\"\nconclusion: R(c)\nlines: [{formula: R(c), tautology: true, map: {c: d}}]", "map is only allowed"},
		{"bad map", "format: \"1.0\"\nconclusion: R(c)\nlines: [{formula: R(c), assumption: {formula: R(c)}, map: {f: d}}]", "map:"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat("1"))
	assert.NoError(t, CheckFormat("1.7.3"))
	assert.Error(t, CheckFormat("0.9"))
}

func ExampleEncode() {
	p := prover.NewFromStrings("R(c)")
	l := p.AddAssumption(fol.MustParse("R(c)"))
	p.AddUG(fol.MustParse("Ax[R(c)]"), l)
	if err := Encode(os.Stdout, p.Qed()); err != nil {
		fmt.Println(err)
	}
	// Output:
	// format: "1.0"
	// axioms: true
	// assumptions:
	//   - formula: R(c)
	// conclusion: Ax[R(c)]
	// lines:
	//   - formula: R(c)
	//     assumption: {formula: R(c)}
	//   - formula: Ax[R(c)]
	//     ug: 0
}
