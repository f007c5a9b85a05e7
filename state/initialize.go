package state

import (
	"time"

	"go.uber.org/zap"
)

const defaultSeparator = "_"

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Log:   zap.NewNop(),
	}
}
