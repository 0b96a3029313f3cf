package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/engine"
	"github.com/akaoio/akao-sub001/internal/eval"
	"github.com/akaoio/akao-sub001/internal/registry"
	"github.com/akaoio/akao-sub001/internal/value"
)

var checkCmd = &cobra.Command{
	Use:   "check <doc> [path]",
	Short: "load and run a single rule or philosophy document",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCheck,
}

// buildEngine wires one Engine from the process-wide cfg: the default
// handler set plus registry-table validation when configured,
// the configured fixpoint cap and deadline, and a zap trace sink when
// tracing is on.
func buildEngine() (*engine.Engine, error) {
	reg := registry.NewWithDefaults()
	if cfg.Registry.TablePath != "" {
		if _, err := registry.LoadTable(cfg.Registry.TablePath, reg); err != nil {
			return nil, err
		}
	}

	opts := eval.Options{
		FixpointCap: cfg.Eval.FixpointCap,
		EnableCache: cfg.Eval.EnableCache,
	}
	if d := cfg.GetDeadline(); d > 0 {
		opts.Deadline = time.Now().Add(d)
	}

	eng := engine.New(reg, opts)
	if cfg.Eval.EnableTrace {
		eng.EnableTracing(eval.NewZapTracer(logger))
	}
	return eng, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	root := "."
	if len(args) == 2 {
		root = args[1]
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}
	doc, err := eng.LoadDocument(docPath)
	if err != nil {
		return err
	}

	ctx := ctxpkg.New()
	ctx.Bind("root", value.NewString(root))
	out := eng.Run(doc, ctx)

	reportOutcome(docPath, out)
	if out.Decision() != "pass" {
		return fmt.Errorf("%s: %s", docPath, out.Decision())
	}
	return nil
}

func reportOutcome(path string, out engine.Outcome) {
	logger.Info("akao check",
		zap.String("document", path),
		zap.String("decision", out.Decision()),
		zap.Bool("self_check", selfCheckBool(out)),
		zap.Int("unit_tests", len(out.UnitResults)),
		zap.Int("violations", len(out.Violations)),
	)
	for _, r := range out.UnitResults {
		if !r.Pass {
			logger.Warn("unit test failed",
				zap.String("document", path),
				zap.String("test", r.Name),
				zap.String("observed", r.Observed.String()),
				zap.String("expected", r.Expected.String()),
			)
		}
	}
	for _, v := range out.Violations {
		logger.Warn("violation",
			zap.String("document", path),
			zap.String("id", v.ID),
			zap.String("kind", v.Kind),
			zap.String("variable", v.Variable),
			zap.String("value", v.Value.String()),
			zap.String("pos", v.Pos.String()),
		)
	}
}

func selfCheckBool(out engine.Outcome) bool {
	b, _ := out.SelfCheck.Bool()
	return b
}
