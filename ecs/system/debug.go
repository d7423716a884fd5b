package system

import "log"

var debugEnabled bool

// SetDebug turns on per-plan logging.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

func debugf(format string, args ...any) {
	if debugEnabled {
		log.Printf(format, args...)
	}
}
