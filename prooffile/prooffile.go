// Package prooffile reads and writes proofs as YAML documents.
//
// A document looks like:
//
//	format: "1.0"
//	axioms: true
//	assumptions:
//	  - formula: Ax[(Man(x)->Mortal(x))]
//	  - formula: Man(aristotle)
//	conclusion: Mortal(aristotle)
//	lines:
//	  - formula: Ax[(Man(x)->Mortal(x))]
//	    assumption: {formula: "Ax[(Man(x)->Mortal(x))]"}
//	  - formula: (Ax[(Man(x)->Mortal(x))]->(Man(aristotle)->Mortal(aristotle)))
//	    assumption: {formula: "(Ax[R(x)]->R(c))", templates: [R, c, x]}
//	    map: {R: "(Man(_)->Mortal(_))", c: aristotle}
//	  - formula: (Man(aristotle)->Mortal(aristotle))
//	    mp: [0, 1]
//	  - formula: Man(aristotle)
//	    assumption: {formula: Man(aristotle)}
//	  - formula: Mortal(aristotle)
//	    mp: [3, 2]
//
// Each line has exactly one justification: assumption (with an optional map), mp, ug or tautology.
// When axioms is true, the six axioms of the prover are added to the assumptions.
package prooffile

import (
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prover"
)

// FormatVersion is the version of the documents written by Encode.
const FormatVersion = "1.0"

// SupportedFormats is the constraint the format of decoded documents must satisfy.
const SupportedFormats = "^1"

// A Document is the YAML representation of a proof.
type Document struct {
	Format      string      `yaml:"format"`
	Axioms      bool        `yaml:"axioms,omitempty"`
	Assumptions []SchemaDoc `yaml:"assumptions,omitempty"`
	Conclusion  string      `yaml:"conclusion"`
	Lines       []LineDoc   `yaml:"lines"`
}

// A SchemaDoc is the YAML representation of a schema.
type SchemaDoc struct {
	Formula   string   `yaml:"formula"`
	Templates []string `yaml:"templates,omitempty,flow"`
}

// A LineDoc is the YAML representation of a line.
type LineDoc struct {
	Formula    string            `yaml:"formula"`
	Assumption *SchemaDoc        `yaml:"assumption,omitempty,flow"`
	Map        map[string]string `yaml:"map,omitempty,flow"`
	MP         []int             `yaml:"mp,omitempty,flow"`
	UG         *int              `yaml:"ug,omitempty"`
	Tautology  bool              `yaml:"tautology,omitempty"`
}

// Decode reads a document from r and returns the proof it describes.
func Decode(r io.Reader) (*proofs.Proof, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode proof document: %w", err)
	}
	return doc.Proof()
}

// ReadFile decodes the proof document at path.
func ReadFile(path string) (*proofs.Proof, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse proof file %q: %w", path, err)
	}
	return p, nil
}

// CheckFormat returns an error if format does not satisfy SupportedFormats.
func CheckFormat(format string) error {
	if format == "" {
		return fmt.Errorf("missing format version")
	}
	v, err := semver.NewVersion(format)
	if err != nil {
		return fmt.Errorf("invalid format version %q: %w", format, err)
	}
	c, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		panic(err)
	}
	if !c.Check(v) {
		return fmt.Errorf("unsupported format version %s, expected %s", v, SupportedFormats)
	}
	return nil
}

// Proof returns the proof described by d.
// It does not check the proof is valid, only that it is well-formed.
func (d *Document) Proof() (*proofs.Proof, error) {
	if err := CheckFormat(d.Format); err != nil {
		return nil, err
	}
	var assumptions []*proofs.Schema
	if d.Axioms {
		assumptions = append(assumptions, prover.Axioms...)
	}
	for i, a := range d.Assumptions {
		s, err := a.Schema()
		if err != nil {
			return nil, fmt.Errorf("assumption %d: %w", i, err)
		}
		assumptions = append(assumptions, s)
	}
	conclusion, err := fol.Parse(d.Conclusion)
	if err != nil {
		return nil, fmt.Errorf("conclusion: %w", err)
	}
	lines := make([]proofs.Line, len(d.Lines))
	for i, l := range d.Lines {
		if lines[i], err = l.Line(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	return proofs.NewProof(assumptions, conclusion, lines), nil
}

// Schema returns the schema described by s.
func (s SchemaDoc) Schema() (*proofs.Schema, error) {
	return proofs.ParseSchema(s.Formula, s.Templates...)
}

// Line returns the line described by l.
func (l LineDoc) Line() (proofs.Line, error) {
	f, err := fol.Parse(l.Formula)
	if err != nil {
		return nil, err
	}
	justifications := 0
	for _, set := range []bool{l.Assumption != nil, l.MP != nil, l.UG != nil, l.Tautology} {
		if set {
			justifications++
		}
	}
	if justifications != 1 {
		return nil, fmt.Errorf("expected exactly one justification, got %d", justifications)
	}
	if l.Map != nil && l.Assumption == nil {
		return nil, fmt.Errorf("map is only allowed for assumption lines")
	}
	switch {
	case l.Assumption != nil:
		s, err := l.Assumption.Schema()
		if err != nil {
			return nil, fmt.Errorf("assumption: %w", err)
		}
		m, err := proofs.ParseInstantiationMap(l.Map)
		if err != nil {
			return nil, fmt.Errorf("map: %w", err)
		}
		return &proofs.AssumptionLine{Formula: f, Schema: s, Map: m}, nil
	case l.MP != nil:
		if len(l.MP) != 2 {
			return nil, fmt.Errorf("mp expects 2 line numbers, got %d", len(l.MP))
		}
		return &proofs.MPLine{Formula: f, Antecedent: l.MP[0], Conditional: l.MP[1]}, nil
	case l.UG != nil:
		return &proofs.UGLine{Formula: f, Predicate: *l.UG}, nil
	default:
		return &proofs.TautologyLine{Formula: f}, nil
	}
}

// NewDocument returns the document describing p.
// If p's assumptions include all the prover's axioms, they are written as axioms: true.
func NewDocument(p *proofs.Proof) *Document {
	d := &Document{Format: FormatVersion, Conclusion: p.Conclusion.String()}
	assumptions := p.Assumptions
	if rest, ok := withoutAxioms(assumptions); ok {
		d.Axioms = true
		assumptions = rest
	}
	for _, a := range assumptions {
		d.Assumptions = append(d.Assumptions, schemaDoc(a))
	}
	for _, l := range p.Lines {
		d.Lines = append(d.Lines, lineDoc(l))
	}
	return d
}

// Encode writes p as a YAML document to w.
func Encode(w io.Writer, p *proofs.Proof) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(p)); err != nil {
		return fmt.Errorf("could not encode proof: %w", err)
	}
	return enc.Close()
}

func withoutAxioms(assumptions []*proofs.Schema) ([]*proofs.Schema, bool) {
	keys := make(map[string]bool, len(assumptions))
	for _, a := range assumptions {
		keys[a.Key()] = true
	}
	axioms := make(map[string]bool, len(prover.Axioms))
	for _, a := range prover.Axioms {
		if !keys[a.Key()] {
			return nil, false
		}
		axioms[a.Key()] = true
	}
	var rest []*proofs.Schema
	for _, a := range assumptions {
		if !axioms[a.Key()] {
			rest = append(rest, a)
		}
	}
	return rest, true
}

func schemaDoc(s *proofs.Schema) SchemaDoc {
	return SchemaDoc{Formula: s.Formula.String(), Templates: s.Templates.Sorted()}
}

func lineDoc(l proofs.Line) LineDoc {
	res := LineDoc{Formula: l.Conclusion().String()}
	switch l := l.(type) {
	case *proofs.AssumptionLine:
		s := schemaDoc(l.Schema)
		res.Assumption = &s
		if l.Map.Len() > 0 {
			res.Map = l.Map.Strings()
		}
	case *proofs.MPLine:
		res.MP = []int{l.Antecedent, l.Conditional}
	case *proofs.UGLine:
		ug := l.Predicate
		res.UG = &ug
	case *proofs.TautologyLine:
		res.Tautology = true
	default:
		panic("invalid line type")
	}
	return res
}
