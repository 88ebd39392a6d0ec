package game

import "time"

// pool holds the live collectibles in spawn order.
type pool struct {
	items []*Collectible
}

func (p *pool) len() int {
	return len(p.items)
}

func (p *pool) add(c *Collectible) {
	p.items = append(p.items, c)
}

func (p *pool) remove(id string) (*Collectible, bool) {
	for i, c := range p.items {
		if c.ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// oldest returns the item with the strictly smallest CreatedAt among those
// accepted by keep. Ties go to the earlier spawned item.
func (p *pool) oldest(keep func(c *Collectible) bool) (*Collectible, bool) {
	var found *Collectible
	for _, c := range p.items {
		if keep != nil && !keep(c) {
			continue
		}
		if found == nil || c.CreatedAt.Before(found.CreatedAt) {
			found = c
		}
	}
	return found, found != nil
}

func (p *pool) clear() {
	p.items = nil
}

func (p *pool) views() []CollectibleView {
	out := make([]CollectibleView, 0, len(p.items))
	for _, c := range p.items {
		out = append(out, c.view())
	}
	return out
}

func staleAt(now time.Time, lifetime time.Duration) func(c *Collectible) bool {
	return func(c *Collectible) bool {
		return now.Sub(c.CreatedAt) > lifetime
	}
}
