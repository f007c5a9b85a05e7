// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gvs/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by generate subcommand
	Overwrite bool
	Stdout    bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Separator returns class separator used when compiling variant class
// names, falling back to default when no configuration is loaded.
func (e *LocalEnv) Separator() string {
	if e.Cfg == nil || len(e.Cfg.Generator.ClassSeparator) == 0 {
		return defaultSeparator
	}
	return e.Cfg.Generator.ClassSeparator
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
