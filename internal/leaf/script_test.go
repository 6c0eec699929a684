package leaf

import (
	"io"
	"log/slog"
	"testing"

	"github.com/joeycumines/behave"
	"github.com/joeycumines/behave/internal/blackboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScript_Counter(t *testing.T) {
	t.Parallel()

	bb := new(blackboard.Blackboard)
	script, err := NewScript("count", `
		var n = 0;
		function tick() {
			n++;
			bb.set("count", n);
			return n < 3 ? bt.running : bt.success;
		}
		function reset() {
			n = 0;
			bb.delete("count");
		}
	`, bb)
	require.NoError(t, err)

	assert.Equal(t, behave.Running, script.Tick(0, nil))
	assert.Equal(t, behave.Running, script.Tick(0, nil))
	assert.Equal(t, behave.Success, script.Tick(0, nil))
	assert.Equal(t, int64(3), bb.Get("count"))

	behave.Reset(script)
	assert.False(t, bb.Has("count"))
	assert.Equal(t, behave.Running, script.Tick(0, nil))
	assert.NoError(t, script.LastError())
	assert.Equal(t, "count", behave.Name(script))
}

func TestScript_ReadsBlackboard(t *testing.T) {
	t.Parallel()

	bb := blackboard.New(map[string]any{"door": "open"})
	script, err := NewScript("door", `
		function tick() {
			return bb.get("door") === "open" ? bt.success : bt.failure;
		}
	`, bb)
	require.NoError(t, err)

	assert.Equal(t, behave.Success, script.Tick(0, nil))
	bb.Set("door", "closed")
	assert.Equal(t, behave.Failure, script.Tick(0, nil))
	script.Reset() // no reset function defined
}

func TestScript_TickErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{name: "throws", source: `function tick() { throw new Error("boom"); }`},
		{name: "unknown status", source: `function tick() { return "maybe"; }`},
		{name: "no return", source: `function tick() {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			script, err := NewScript(tt.name, tt.source, new(blackboard.Blackboard), discardLogger())
			require.NoError(t, err)
			assert.Equal(t, behave.Failure, script.Tick(0, nil))
			assert.Error(t, script.LastError())
		})
	}
}

func TestScript_ConstructionErrors(t *testing.T) {
	t.Parallel()
	bb := new(blackboard.Blackboard)

	_, err := NewScript("syntax", `function tick( {`, bb)
	assert.ErrorContains(t, err, "load")

	_, err = NewScript("missing", `var x = 1;`, bb)
	assert.ErrorContains(t, err, "tick is not a function")

	_, err = NewScript("bad reset", `function tick() { return bt.success; } var reset = 3;`, bb)
	assert.ErrorContains(t, err, "reset is not a function")

	_, err = NewScript("nil", `function tick() { return bt.success; }`, nil)
	assert.Error(t, err)
}
