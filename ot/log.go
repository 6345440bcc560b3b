package ot

import "github.com/go-logr/logr"

var log = logr.Discard()

// SetLogger sets the logger used by compose and transform. The default logger
// discards everything.
func SetLogger(logger logr.Logger) {
	log = logger.WithName("ot")
}
