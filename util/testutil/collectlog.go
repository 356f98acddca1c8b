package testutil

import (
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Log lines captured by a logger from CollectLog.
type LogLines struct {
	mu    sync.Mutex
	lines []string
}

func (ll *LogLines) Lines() []string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return append([]string(nil), ll.lines...)
}

func (ll *LogLines) Contains(s string) bool {
	for _, l := range ll.Lines() {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

//----------

// Logger that keeps its lines (up to the verbosity) and also sends them to
// t.Logf.
func CollectLog(t *testing.T, verbosity int) (logr.Logger, *LogLines) {
	t.Helper()
	ll := &LogLines{}
	fn := func(prefix, args string) {
		s := args
		if prefix != "" {
			s = prefix + ": " + args
		}
		ll.mu.Lock()
		ll.lines = append(ll.lines, s)
		ll.mu.Unlock()
		t.Log(s)
	}
	return funcr.New(fn, funcr.Options{Verbosity: verbosity}), ll
}
