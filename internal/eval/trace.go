package eval

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akaoio/akao-sub001/internal/value"
)

// Record is the observational trace event for one node evaluation,
// emitted only when tracing is enabled. Tracing never changes
// evaluation outcomes.
type Record struct {
	RunID    string
	NodeKind Kind
	Pos      Position
	Depth    int
	Inputs   []value.Value
	Outcome  value.Value
	Err      error
	Elapsed  time.Duration
}

// Tracer receives trace Records as they are produced. Engine-level code
// installs one via Evaluator.EnableTracing; a nil Tracer means tracing is
// off and Eval skips record construction entirely.
type Tracer interface {
	Emit(Record)
}

// ZapTracer adapts a *zap.Logger into a Tracer. Each Record becomes one
// structured log line at Debug level so trace volume does not compete
// with ordinary operational logging.
type ZapTracer struct {
	logger *zap.Logger
	runID  string
}

// NewZapTracer wraps logger, stamping every record emitted through this
// tracer with a fresh UUIDv4 run id.
func NewZapTracer(logger *zap.Logger) *ZapTracer {
	return &ZapTracer{logger: logger, runID: uuid.NewString()}
}

func (t *ZapTracer) Emit(r Record) {
	r.RunID = t.runID
	fields := []zap.Field{
		zap.String("run_id", r.RunID),
		zap.String("kind", r.NodeKind.String()),
		zap.String("pos", r.Pos.String()),
		zap.Int("depth", r.Depth),
		zap.Duration("elapsed", r.Elapsed),
	}
	if r.Err != nil {
		fields = append(fields, zap.Error(r.Err))
		t.logger.Debug("eval.trace", fields...)
		return
	}
	fields = append(fields, zap.String("outcome", r.Outcome.String()))
	t.logger.Debug("eval.trace", fields...)
}

// NopTracer discards every record; used where tracing is wired but
// disabled by configuration.
type nopTracer struct{}

func (nopTracer) Emit(Record) {}

// NopTracer is the zero-cost Tracer used when no sink was configured.
var NopTracer Tracer = nopTracer{}
