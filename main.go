// Command hilbert checks and builds first-order proofs in a Hilbert-style system.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hilbert-prover/hilbert/config"
	"github.com/hilbert-prover/hilbert/explain"
	"github.com/hilbert-prover/hilbert/fol"
	"github.com/hilbert-prover/hilbert/prooffile"
	"github.com/hilbert-prover/hilbert/proofs"
	"github.com/hilbert-prover/hilbert/prop"
	"github.com/hilbert-prover/hilbert/prover"
	"github.com/hilbert-prover/hilbert/theorems"
	"github.com/hilbert-prover/hilbert/verifier"
)

const (
	Version = "0.1.0"
	appName = "hilbert"
)

// errFailed is returned by commands that already reported why they failed.
var errFailed = errors.New("failed")

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
}

// setup loads the configuration and builds the logger.
// The --log-level flag takes precedence over the configured level.
func (o *options) setup() (*config.Config, *slog.Logger, error) {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.NewLoader(bootstrap).Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "First-order Hilbert-style proof engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `hilbert checks and builds proofs in first-order predicate logic.

Proofs are YAML documents listing assumption schemas, a conclusion and lines, each justified by
an instantiated assumption, modus ponens, universal generalization or a tautology.`,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(verifyCmd(&opts), tautologyCmd(), skeletonCmd(), evalCmd(), theoremCmd(&opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func verifyCmd(opts *options) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "verify [patterns...]",
		Short: "Check proof files",
		Long: `Check the proof files matching the given glob patterns (** matches any number of
directories). Without patterns, the configured patterns are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			v, err := verifier.New(cfg, logger, reg)
			if err != nil {
				return err
			}
			files, err := v.Expand(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no proof file found")
			}
			out := cmd.OutOrStdout()
			results, err := v.VerifyAll(cmd.Context(), files)
			for _, r := range results {
				if r.Path == "" {
					continue // not checked because of cancellation
				}
				if err := verifier.WriteReport(out, r, v.Explain()); err != nil {
					return err
				}
			}
			if err != nil {
				return err
			}
			if cfg.Metrics.Enabled {
				if err := verifier.WriteSummary(out, reg); err != nil {
					return err
				}
			}
			if watch {
				return v.Watch(cmd.Context(), files, func(r verifier.Result) {
					if err := verifier.WriteReport(out, r, v.Explain()); err != nil {
						logger.Error("Could not write report", slog.String("error", err.Error()))
					}
				})
			}
			if !verifier.AllValid(results) {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Check files again whenever they change")
	return cmd
}

func tautologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tautology <formula>",
		Short: "Prove a first-order tautology, or show why it is not one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fol.Parse(args[0])
			if err != nil {
				return fmt.Errorf("could not parse formula: %w", err)
			}
			out := cmd.OutOrStdout()
			if c, ok := explain.FindCounterexample(f); ok {
				fmt.Fprintf(out, "%s is not a tautology; counterexample: %s\n", f, c)
				return errFailed
			}
			fmt.Fprint(out, proofs.ProveTautology(f))
			return nil
		},
	}
}

func skeletonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skeleton <formula>",
		Short: "Print the propositional skeleton of a first-order formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fol.Parse(args[0])
			if err != nil {
				return fmt.Errorf("could not parse formula: %w", err)
			}
			skeleton, atoms := f.PropositionalSkeleton()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, skeleton)
			names := make([]string, 0, len(atoms))
			for name := range atoms {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %s\n", name, atoms[name])
			}
			fmt.Fprintf(out, "tautology: %t\n", prop.IsTautology(skeleton))
			return nil
		},
	}
}

func evalCmd() *cobra.Command {
	var (
		modelPath string
		eliminate bool
	)
	cmd := &cobra.Command{
		Use:   "eval <formula>...",
		Short: "Evaluate formulas in a finite model",
		Long: `Evaluate formulas in the finite model described by a YAML file. Free variables are
universally quantified. With --eliminate, functions and equality are first replaced with relations
in both the formulas and the model, and the translated formulas are evaluated as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(modelPath)
			if err != nil {
				return err
			}
			formulas := make([]*fol.Formula, len(args))
			for i, a := range args {
				if formulas[i], err = fol.Parse(a); err != nil {
					return fmt.Errorf("could not parse formula %q: %w", a, err)
				}
			}
			out := cmd.OutOrStdout()
			for _, f := range formulas {
				fmt.Fprintf(out, "%s: %t\n", f, m.IsModelOf([]*fol.Formula{f}))
			}
			if eliminate {
				return evalEliminated(cmd, m, formulas)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "Model file path (YAML)")
	cmd.Flags().BoolVar(&eliminate, "eliminate", false, "Also evaluate the formulas with functions and equality eliminated")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func theoremCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "theorem [name]",
		Short: "Print a ready-made proof as a proof document, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range theoremNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			build, ok := theoremsByName[args[0]]
			if !ok {
				return fmt.Errorf("unknown theorem %q", args[0])
			}
			_, logger, err := opts.setup()
			if err != nil {
				return err
			}
			return prooffile.Encode(out, build(prover.WithLogger(logger)))
		},
	}
}

var theoremsByName = map[string]func(...prover.Option) *proofs.Proof{
	"syllogism":               theorems.Syllogism,
	"syllogism-ui":            theorems.SyllogismWithUniversalInstantiation,
	"syllogism-all-all":       theorems.SyllogismAllAll,
	"syllogism-all-all-ti":    theorems.SyllogismAllAllWithTautologicalImplication,
	"syllogism-all-exists":    theorems.SyllogismAllExists,
	"syllogism-all-exists-ed": theorems.SyllogismAllExistsWithExistentialDerivation,
	"lovers":                  theorems.Lovers,
	"homework":                theorems.Homework,
	"unique-zero":             theorems.UniqueZero,
	"right-neutral": func(opts ...prover.Option) *proofs.Proof {
		return theorems.RightNeutral(theorems.Complete, opts...)
	},
}

func theoremNames() []string {
	names := make([]string, 0, len(theoremsByName))
	for name := range theoremsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
