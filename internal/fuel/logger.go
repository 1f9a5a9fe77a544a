package fuel

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger   = zerolog.Nop()
	loggerMu sync.RWMutex
)

// SetLogger sets the logger used while loading fuel tables.
// Call it before the first use of Default.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l.With().Str("component", "fuel-registry").Logger()
}

func getLogger() *zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	l := logger
	return &l
}
