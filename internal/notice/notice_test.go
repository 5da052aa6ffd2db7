package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelsAreIndependent(t *testing.T) {
	m := NewManager()

	m.SetClosed(Advisory("closed"))
	m.Refresh("short")
	assert.Equal(t, Notices{Closed: Advisory("closed"), Shortage: Advisory("short")}, m.Snapshot())

	m.ClearShortage()
	assert.Equal(t, Advisory("closed"), m.Snapshot().Closed)

	m.Refresh("short again")
	m.ClearClosed()
	assert.Equal(t, Advisory("short again"), m.Snapshot().Shortage)
	assert.True(t, m.Snapshot().Closed.IsZero())
}

func TestBlockingReplacesShortage(t *testing.T) {
	m := NewManager()
	m.SetClosed(Advisory("closed"))
	m.Refresh("short")

	n := m.Block("refused", false)
	assert.True(t, n.Blocks())
	snap := m.Snapshot()
	assert.Equal(t, Blocking("refused"), snap.Shortage)
	assert.Equal(t, Advisory("closed"), snap.Closed)

	m.Block("late", true)
	snap = m.Snapshot()
	assert.Equal(t, Blocking("late"), snap.Shortage)
	assert.True(t, snap.Closed.IsZero())
}

func TestBlockingLastsUntilNextRefresh(t *testing.T) {
	m := NewManager()
	m.Block("refused", false)
	assert.Equal(t, Blocking("refused"), m.Snapshot().Shortage)

	m.Refresh("short")
	assert.Equal(t, Advisory("short"), m.Snapshot().Shortage)

	m.Block("refused", false)
	m.Refresh("")
	assert.True(t, m.Snapshot().Empty())
}

func TestUnblock(t *testing.T) {
	m := NewManager()
	m.Block("refused", false)
	m.Unblock()
	assert.True(t, m.Snapshot().Empty())

	m.Refresh("short")
	m.Unblock()
	assert.Equal(t, Advisory("short"), m.Snapshot().Shortage, "advisories survive Unblock")
}

func TestIdleKeepsBlocking(t *testing.T) {
	m := NewManager()
	m.SetClosed(Advisory("closed"))
	m.Block("late", false)

	m.Idle()
	snap := m.Snapshot()
	assert.True(t, snap.Closed.IsZero())
	assert.Equal(t, Blocking("late"), snap.Shortage)

	m.Clear()
	assert.True(t, m.Snapshot().Empty())
}

func TestNoticesString(t *testing.T) {
	assert.Equal(t, "", Notices{}.String())
	assert.Equal(t, "a", Notices{Closed: Advisory("a")}.String())
	assert.Equal(t, "b", Notices{Shortage: Blocking("b")}.String())
	assert.Equal(t, "a b", Notices{Closed: Advisory("a"), Shortage: Advisory("b")}.String())
}

func TestShortageText(t *testing.T) {
	assert.Equal(t, "", ShortageText(0, 0, 0))
	assert.Equal(t, LineRequiredMissing(), ShortageText(1, 0, 0))
	assert.Equal(t, LineRequiredMissing(), ShortageText(0, 1, 0))
	assert.Equal(t, LineExtensionShort(2), ShortageText(0, 0, 2))
	assert.Equal(t,
		"Required order (1 drink + 1 amuse) is missing. Extension drinks/amuse are short (3 missing).",
		ShortageText(1, 1, 3))
}
