package solver

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/countdown/internal/logging"
)

// Message is a request to a Worker. With Start set it begins a new run
// over Numbers under Token; otherwise it asks for the next batch of the
// run holding Token and Numbers is ignored.
type Message struct {
	Token   uint64
	Start   bool
	Numbers []int
}

// Batch is a Worker's reply to one Message.
type Batch struct {
	Token     uint64
	Witnesses []Witness

	// Pulled is the number of terms consumed for this batch.
	Pulled int

	// Exhausted means no further batches will be sent for Token.
	Exhausted bool

	// Err is set when the run could not start.
	Err error
}

// Worker owns at most one Explorer and answers Messages one batch at a
// time. Serve must not be called concurrently.
type Worker struct {
	rng       Range
	batchSize int
	logger    *logging.Logger

	explorer *Explorer
}

// NewWorker returns a worker reporting values in rng, pulling batchSize
// terms per batch.
func NewWorker(rng Range, batchSize int, logger *logging.Logger) *Worker {
	if batchSize < 1 {
		batchSize = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Worker{
		rng:       rng,
		batchSize: batchSize,
		logger:    logger.Named("worker"),
	}
}

// Serve answers messages from in until in is closed or ctx is done.
func (w *Worker) Serve(ctx context.Context, in <-chan Message, out chan<- Batch) error {
	defer w.reset()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-in:
			if !ok {
				return nil
			}
			batch, reply := w.handle(ctx, msg)
			if !reply {
				continue
			}
			select {
			case out <- batch:
				WorkerBatches.Inc()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// handle returns the batch answering msg, or false when msg is stale.
func (w *Worker) handle(ctx context.Context, msg Message) (Batch, bool) {
	if msg.Start {
		w.reset()
		if err := Validate(msg.Numbers); err != nil {
			RunsTotal.WithLabelValues(opWorker, resultInvalid).Inc()
			return Batch{Token: msg.Token, Exhausted: true, Err: err}, true
		}
		run := NewRun(msg.Token, msg.Numbers)
		w.explorer = NewExplorer(ctx, run, w.rng)
		w.logger.Debug(logging.WithRun(ctx, run.ID, run.Token), "run started",
			zap.Ints("numbers", run.Numbers),
			zap.Stringer("range", w.rng),
		)
		return w.next(ctx), true
	}

	if w.explorer == nil || w.explorer.Run().Token != msg.Token {
		StaleMessages.Inc()
		w.logger.Trace(ctx, "ignoring stale continuation", zap.Uint64("token", msg.Token))
		return Batch{}, false
	}
	return w.next(ctx), true
}

func (w *Worker) next(ctx context.Context) Batch {
	ex := w.explorer
	run := ex.Run()
	before := ex.Pulled()
	found, exhausted := ex.Next(w.batchSize)

	batch := Batch{
		Token:     run.Token,
		Witnesses: slices.Clip(found),
		Pulled:    ex.Pulled() - before,
		Exhausted: exhausted,
	}
	TermsPulled.WithLabelValues(opWorker).Add(float64(batch.Pulled))
	WitnessesFound.WithLabelValues(opWorker).Add(float64(len(found)))

	if exhausted {
		result := resultOK
		if ctx.Err() != nil {
			result = resultCanceled
		}
		RunsTotal.WithLabelValues(opWorker, result).Inc()
		w.logger.Debug(logging.WithRun(ctx, run.ID, run.Token), "run exhausted",
			zap.Int("terms", ex.Pulled()),
			zap.Bool("covered", ex.Covered()),
		)
		w.reset()
	}
	return batch
}

func (w *Worker) reset() {
	if w.explorer != nil {
		w.explorer.Close()
		w.explorer = nil
	}
}
