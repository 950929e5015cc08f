package state

import (
	"time"

	"go.uber.org/zap"
)

// newLocalEnv creates a new LocalEnv instance with default values. Logger is
// replaced when configuration is loaded, until then nothing is logged.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Log:   zap.NewNop(),
	}
}
