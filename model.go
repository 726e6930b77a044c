package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/semantics"
	"github.com/hilbert-prover/hilbert/translate"
)

// modelDoc is the YAML description of a finite model:
//
//	universe: [0, 1]
//	constants: {c: 0}
//	relations:
//	  Less: [[0, 1]]
//	functions:
//	  succ:
//	    - {args: [0], value: 1}
//	    - {args: [1], value: 0}
type modelDoc struct {
	Universe  []string                `yaml:"universe"`
	Constants map[string]string       `yaml:"constants"`
	Relations map[string][][]string   `yaml:"relations"`
	Functions map[string][]mappingDoc `yaml:"functions"`
}

type mappingDoc struct {
	Args  []string `yaml:"args,flow"`
	Value string   `yaml:"value"`
}

func loadModel(path string) (*semantics.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var doc modelDoc
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse model file %q: %w", path, err)
	}
	relations := make(map[string][]semantics.Tuple, len(doc.Relations))
	for name, tuples := range doc.Relations {
		for _, t := range tuples {
			relations[name] = append(relations[name], semantics.Tuple(t))
		}
		if len(tuples) == 0 {
			relations[name] = nil
		}
	}
	functions := make(map[string][]semantics.Mapping, len(doc.Functions))
	for name, mappings := range doc.Functions {
		for _, mp := range mappings {
			functions[name] = append(functions[name], semantics.Mapping{Args: mp.Args, Value: mp.Value})
		}
	}
	m, err := semantics.NewModel(doc.Universe, doc.Constants, relations, functions)
	if err != nil {
		return nil, fmt.Errorf("invalid model %q: %w", path, err)
	}
	return m, nil
}

// evalEliminated evaluates the formulas obtained by replacing functions and equality with
// relations in the model obtained the same way, along with the formulas the translation adds.
func evalEliminated(cmd *cobra.Command, m *semantics.Model, formulas []*fol.Formula) (err error) {
	defer func() {
		// The translations panic on formulas they cannot handle.
		if r := recover(); r != nil {
			err = fmt.Errorf("could not eliminate functions and equality: %v", r)
		}
	}()
	translated := translate.ReplaceEqualityWithSameInFormulas(translate.ReplaceFunctionsWithRelationsInFormulas(formulas))
	rm, err := translate.ReplaceFunctionsWithRelationsInModel(m)
	if err != nil {
		return err
	}
	if rm, err = translate.AddSameAsEqualityInModel(rm); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "without functions and equality:")
	for _, f := range translated {
		fmt.Fprintf(out, "  %s: %t\n", f, rm.IsModelOf([]*fol.Formula{f}))
	}
	return nil
}
