package drawutil

import "github.com/go-logr/logr"

var logger = logr.Discard()

func SetLogger(l logr.Logger) {
	logger = l.WithName("drawutil")
}
