package game

// roster keeps players in join order so that host promotion and winner
// selection are deterministic.
type roster struct {
	order []string
	byID  map[string]*Player
}

func newRoster() *roster {
	return &roster{byID: make(map[string]*Player)}
}

func (r *roster) add(p *Player) {
	if _, ok := r.byID[p.ID]; ok {
		return
	}
	r.order = append(r.order, p.ID)
	r.byID[p.ID] = p
}

func (r *roster) get(id string) (*Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *roster) remove(id string) (*Player, bool) {
	p, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p, true
}

func (r *roster) len() int {
	return len(r.order)
}

func (r *roster) hasName(name string) bool {
	for _, p := range r.byID {
		if p.Name == name {
			return true
		}
	}
	return false
}

// first returns the earliest joined player still present.
func (r *roster) first() (*Player, bool) {
	if len(r.order) == 0 {
		return nil, false
	}
	return r.byID[r.order[0]], true
}

func (r *roster) each(fn func(p *Player)) {
	for _, id := range r.order {
		fn(r.byID[id])
	}
}

// snapshot copies every player so the result can leave the store.
func (r *roster) snapshot() map[string]Player {
	out := make(map[string]Player, len(r.order))
	for _, id := range r.order {
		out[id] = *r.byID[id]
	}
	return out
}
