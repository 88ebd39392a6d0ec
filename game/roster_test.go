package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_KeepsJoinOrder(t *testing.T) {
	r := newRoster()
	for _, id := range []string{"c", "a", "d", "b"} {
		r.add(&Player{ID: id, Name: "name-" + id})
	}

	_, ok := r.remove("a")
	require.True(t, ok)
	_, ok = r.remove("a")
	assert.False(t, ok)

	var order []string
	r.each(func(p *Player) { order = append(order, p.ID) })
	assert.Equal(t, []string{"c", "d", "b"}, order)

	first, ok := r.first()
	require.True(t, ok)
	assert.Equal(t, "c", first.ID)
	assert.Equal(t, 3, r.len())
}

func TestRoster_SnapshotIsCopy(t *testing.T) {
	r := newRoster()
	r.add(&Player{ID: "a", Name: "Alice", Score: 1})

	snap := r.snapshot()
	p, _ := r.get("a")
	p.Score = 9

	assert.Equal(t, 1, snap["a"].Score)
	assert.True(t, r.hasName("Alice"))
	assert.False(t, r.hasName("alice"))
}

func TestPool_OldestTieBreak(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &pool{}
	p.add(&Collectible{ID: "x", CreatedAt: t0.Add(time.Second)})
	p.add(&Collectible{ID: "y", CreatedAt: t0})
	p.add(&Collectible{ID: "z", CreatedAt: t0})

	old, ok := p.oldest(nil)
	require.True(t, ok)
	assert.Equal(t, "y", old.ID)

	old, ok = p.oldest(func(c *Collectible) bool { return c.ID != "y" })
	require.True(t, ok)
	assert.Equal(t, "z", old.ID)

	_, ok = p.oldest(func(*Collectible) bool { return false })
	assert.False(t, ok)

	_, ok = p.remove("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, p.len())
}
