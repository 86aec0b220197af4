package logging

import (
	"go.uber.org/zap/zapcore"
)

// newSampledCore wraps core with level-aware sampling. Each level below
// Error is sampled with its own entry from cfg.Levels (levels without an
// entry pass through); Error and above are never sampled.
func newSampledCore(core zapcore.Core, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled {
		return core
	}

	cores := []zapcore.Core{
		&levelFilterCore{Core: core, minLevel: zapcore.ErrorLevel, hasMin: true},
	}
	for _, lvl := range []zapcore.Level{TraceLevel, zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel} {
		band := &levelFilterCore{Core: core, minLevel: lvl, maxLevel: lvl, hasMin: true, hasMax: true}
		rate, ok := cfg.Levels[lvl]
		if !ok {
			cores = append(cores, band)
			continue
		}
		cores = append(cores, zapcore.NewSamplerWithOptions(
			band,
			cfg.Tick.Duration(),
			rate.Initial,
			rate.Thereafter,
		))
	}
	return zapcore.NewTee(cores...)
}

// levelFilterCore restricts a core to a range of levels.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
	maxLevel zapcore.Level
	hasMin   bool
	hasMax   bool
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	if c.hasMin && lvl < c.minLevel {
		return false
	}
	if c.hasMax && lvl > c.maxLevel {
		return false
	}
	return c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

// With creates a child core that preserves level filtering.
func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{
		Core:     c.Core.With(fields),
		minLevel: c.minLevel,
		maxLevel: c.maxLevel,
		hasMin:   c.hasMin,
		hasMax:   c.hasMax,
	}
}
