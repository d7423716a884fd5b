package draw

var debugEnabled bool

// SetDebug turns on the physics shape overlay.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}
