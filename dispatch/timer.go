package dispatch

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ThakurMayank5/Collect-Server/game"
)

// roundTimer ticks one round. It is bound to the round generation that
// started it so a late tick can never touch the next round.
type roundTimer struct {
	generation uint64
	stop       chan struct{}
}

func (t *roundTimer) halt() {
	close(t.stop)
}

// syncTimer starts or stops the timer to match the round. Caller holds mu.
func (d *Dispatcher) syncTimer() {
	inProgress := d.game.InProgress()
	generation := d.game.Generation()

	if d.timer != nil && (!inProgress || d.timer.generation != generation) {
		d.timer.halt()
		d.timer = nil
	}
	if inProgress && d.timer == nil {
		t := &roundTimer{generation: generation, stop: make(chan struct{})}
		d.timer = t
		go d.runTimer(t)
	}
}

func (d *Dispatcher) runTimer(t *roundTimer) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if d.tick(t) {
				return
			}
		}
	}
}

// tick reports whether the timer goroutine should exit.
func (d *Dispatcher) tick(t *roundTimer) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != t {
		return true
	}

	outs, done := d.game.Tick()
	for _, o := range outs {
		switch data := o.Data.(type) {
		case game.GameOver:
			log.Info().Str("winner", data.Winner).Interface("scores", data.Scores).Msg("🏁 round over")
		case string:
			if o.Event == game.EventItemRemoved {
				log.Debug().Str("item", data).Msg("evicted stale collectible")
			}
		}
	}
	d.deliver(outs)

	if done {
		d.timer = nil
	}
	return done
}
