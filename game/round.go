package game

import "time"

type round struct {
	phase      Phase
	startTime  time.Time
	pauseTime  time.Time
	remaining  int
	scores     map[string]int
	generation uint64
}

func (r *round) reset(duration time.Duration) {
	r.phase = PhaseIdle
	r.startTime = time.Time{}
	r.pauseTime = time.Time{}
	r.remaining = seconds(duration)
	r.scores = make(map[string]int)
}

func (r *round) begin(now time.Time, duration time.Duration) {
	r.phase = PhaseRunning
	r.startTime = now
	r.pauseTime = time.Time{}
	r.remaining = seconds(duration)
	r.scores = make(map[string]int)
	r.generation++
}

func (r *round) inProgress() bool {
	return r.phase == PhaseRunning || r.phase == PhasePaused
}

func (r *round) pause(now time.Time) {
	r.phase = PhasePaused
	r.pauseTime = now
}

// resume shifts startTime by the paused interval so the pause does not count
// against the round.
func (r *round) resume(now time.Time) {
	r.startTime = r.startTime.Add(now.Sub(r.pauseTime))
	r.pauseTime = time.Time{}
	r.phase = PhaseRunning
}

// remainingAt counts whole elapsed seconds, floored at zero.
func (r *round) remainingAt(now time.Time, duration time.Duration) int {
	left := seconds(duration) - seconds(now.Sub(r.startTime))
	if left < 0 {
		return 0
	}
	return left
}

func (r *round) copyScores() map[string]int {
	out := make(map[string]int, len(r.scores))
	for id, s := range r.scores {
		out[id] = s
	}
	return out
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
