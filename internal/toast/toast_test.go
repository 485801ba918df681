package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_AutoDismiss(t *testing.T) {
	n := NewNotifier(Config{Display: 30 * time.Millisecond, Fade: 20 * time.Millisecond})
	defer n.Close()

	n.Notify("Error fetching authors")
	require.Len(t, n.Active(), 1)
	assert.Equal(t, StateShowing, n.Active()[0].State)

	assert.Eventually(t, func() bool {
		active := n.Active()
		return len(active) == 1 && active[0].State == StateFading
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return len(n.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_DismissShortCircuitsToFade(t *testing.T) {
	n := NewNotifier(Config{Display: time.Hour, Fade: 20 * time.Millisecond})
	defer n.Close()

	toast := n.Notify("in use")
	require.True(t, n.Dismiss(toast.ID))

	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, StateFading, active[0].State)

	// A second click while fading changes nothing.
	assert.True(t, n.Dismiss(toast.ID))

	assert.Eventually(t, func() bool {
		return len(n.Active()) == 0
	}, time.Second, 5*time.Millisecond)

	assert.False(t, n.Dismiss(toast.ID))
}

func TestNotifier_StacksIndependently(t *testing.T) {
	n := NewNotifier(Config{Display: time.Hour, Fade: 10 * time.Millisecond})
	defer n.Close()

	first := n.Notify("first")
	second := n.Notify("second")
	third := n.Notify("third")

	require.Len(t, n.Active(), 3)
	assert.NotEqual(t, first.ID, second.ID)

	n.Dismiss(second.ID)
	assert.Eventually(t, func() bool {
		return len(n.Active()) == 2
	}, time.Second, 5*time.Millisecond)

	active := n.Active()
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, third.ID, active[1].ID)
	assert.Equal(t, StateShowing, active[0].State)
}

func TestNotifier_Defaults(t *testing.T) {
	n := NewNotifier(Config{})
	assert.Equal(t, 15*time.Second, n.cfg.Display)
	assert.Equal(t, 500*time.Millisecond, n.cfg.Fade)

	n.Close()
	n.Notify("ignored")
	assert.Empty(t, n.Active())
}
