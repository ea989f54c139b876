package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// applyPass runs one pass over text and returns the rewritten text.
func applyPass(t *testing.T, p Pass, text string) (string, Result) {
	t.Helper()
	buf := NewSourceBuffer("test.c", text)
	res := p.Apply(buf)
	return buf.String(), res
}

// testClock returns a frozen clock for deterministic header output.
func testClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	ts, err := time.Parse("2006/01/02 15:04:05", value)
	require.NoError(t, err)
	return func() time.Time { return ts }
}

// newTestEngine builds an engine with a pinned clock and identity so that
// formatting the same input twice yields identical bytes.
func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = testClock(t, "2024/03/01 10:30:00")
	}
	return NewEngine(opts)
}

// skipReasons flattens the reasons of a result for assertion convenience.
func skipReasons(res Result) []string {
	reasons := make([]string, 0, len(res.Skips))
	for _, s := range res.Skips {
		reasons = append(reasons, s.Reason)
	}
	return reasons
}
