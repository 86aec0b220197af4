package solver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/countdown/internal/logging"
)

// progressStride is how many terms pass between limiter checks.
const progressStride = 4096

// progress logs enumeration progress at most once per interval.
type progress struct {
	logger  *logging.Logger
	limiter *rate.Limiter
	start   time.Time
}

func newProgress(logger *logging.Logger, interval time.Duration) *progress {
	return &progress{
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		start:   time.Now(),
	}
}

// observe is called once per term and reports every progressStride terms
// at most.
func (p *progress) observe(ctx context.Context, pulled, found int) {
	if pulled%progressStride != 0 {
		return
	}
	p.report(ctx, pulled, found)
}

// report logs unless the limiter has no token.
func (p *progress) report(ctx context.Context, pulled, found int) {
	if !p.limiter.Allow() {
		return
	}
	p.logger.Debug(ctx, "enumeration progress",
		zap.Int("terms", pulled),
		zap.Int("found", found),
		zap.Duration("elapsed", time.Since(p.start)),
	)
}
