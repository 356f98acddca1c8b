package fontutil

import "github.com/go-logr/logr"

var logger = logr.Discard()

// Glyph set fills are logged at V(1), placeholder fallbacks at V(2).
func SetLogger(l logr.Logger) {
	logger = l.WithName("fontutil")
}
