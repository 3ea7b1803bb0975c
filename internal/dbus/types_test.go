package dbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	lines []string
	index int
	next  time.Time
	calls []string
}

func (f *fakeController) ShowNext() {
	f.calls = append(f.calls, "next")
	f.index = (f.index + 1) % len(f.lines)
}

func (f *fakeController) ShowPrevious() {
	f.calls = append(f.calls, "previous")
	f.index = (f.index - 1 + len(f.lines)) % len(f.lines)
}

func (f *fakeController) Index() int              { return f.index }
func (f *fakeController) Len() int                { return len(f.lines) }
func (f *fakeController) Current() string         { return f.lines[f.index] }
func (f *fakeController) NextRotation() time.Time { return f.next }

func TestServer_Methods(t *testing.T) {
	ctrl := &fakeController{lines: []string{"Monday\n", "Tuesday\n", "Wednesday\n"}}
	s := NewServer(ctrl, nil, nil)

	require.Nil(t, s.Next())
	index, count, text, dbusErr := s.Current()
	require.Nil(t, dbusErr)
	assert.Equal(t, uint32(1), index)
	assert.Equal(t, uint32(3), count)
	assert.Equal(t, "Tuesday\n", text)

	require.Nil(t, s.Previous())
	require.Nil(t, s.Previous())
	_, _, text, _ = s.Current()
	assert.Equal(t, "Wednesday\n", text)

	assert.Equal(t, []string{"next", "previous", "previous"}, ctrl.calls)
}

func TestServer_DispatchesMutations(t *testing.T) {
	ctrl := &fakeController{lines: []string{"a", "b"}}

	// Simulate a UI loop on another goroutine
	queue := make(chan func())
	go func() {
		for fn := range queue {
			fn()
		}
	}()
	defer close(queue)

	dispatched := 0
	s := NewServer(ctrl, func(fn func()) {
		dispatched++
		queue <- fn
	}, nil)

	require.Nil(t, s.Next())
	assert.Equal(t, 1, dispatched)
	assert.Equal(t, 1, ctrl.Index(), "Next returns after the dispatched call ran")

	// Reads are not dispatched
	_, _, _, _ = s.Current()
	_, _ = s.NextRotation()
	assert.Equal(t, 1, dispatched)
}

func TestServer_NextRotation(t *testing.T) {
	ctrl := &fakeController{lines: []string{"a"}}
	s := NewServer(ctrl, nil, nil)

	sec, dbusErr := s.NextRotation()
	require.Nil(t, dbusErr)
	assert.Equal(t, int64(0), sec, "no rotation scheduled")

	ctrl.next = time.Unix(1_800_000_000, 0)
	sec, _ = s.NextRotation()
	assert.Equal(t, int64(1_800_000_000), sec)
}

func TestServer_NotRunning(t *testing.T) {
	s := NewServer(&fakeController{lines: []string{"a"}}, nil, nil)

	assert.NoError(t, s.EmitTextChanged(0, "a"), "emit without a connection is a no-op")
	assert.NoError(t, s.Stop())
}

func TestWireTime(t *testing.T) {
	assert.Equal(t, int64(0), unixOrZero(time.Time{}))
	assert.True(t, timeOrZero(0).IsZero())

	ts := time.Unix(1_700_000_000, 0)
	assert.True(t, ts.Equal(timeOrZero(unixOrZero(ts))))
}

func TestIntrospectNode(t *testing.T) {
	node := introspectNode()
	assert.Equal(t, string(Path), node.Name)
	require.Len(t, node.Interfaces, 2)

	iface := node.Interfaces[1]
	assert.Equal(t, Interface, iface.Name)

	var methods []string
	for _, m := range iface.Methods {
		methods = append(methods, m.Name)
	}
	assert.ElementsMatch(t, []string{"Next", "Previous", "Current", "NextRotation"}, methods)

	require.Len(t, iface.Signals, 1)
	assert.Equal(t, "TextChanged", iface.Signals[0].Name)
	assert.Equal(t, Interface+".TextChanged", SignalTextChanged)
}
