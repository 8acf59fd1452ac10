package outreach

import (
	"log"
	"math/rand"
	"time"
)

// Pacer inserts the anti-spam delay between outbound messages. It is an
// explicit abstraction so tests (or a future non-blocking scheduler) can
// substitute the blocking sleep.
type Pacer interface {
	Pause()
}

type randomPacer struct {
	min, max time.Duration
	sleep    func(time.Duration)
	rng      *rand.Rand
}

// NewRandomPacer pauses for a uniform random duration in [min, max].
func NewRandomPacer(min, max time.Duration) Pacer {
	if max < min {
		max = min
	}
	return &randomPacer{
		min:   min,
		max:   max,
		sleep: time.Sleep,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *randomPacer) Pause() {
	d := p.min
	if p.max > p.min {
		d += time.Duration(p.rng.Int63n(int64(p.max - p.min + 1)))
	}
	log.Printf("[outreach] waiting %s before next message", d.Round(time.Second))
	p.sleep(d)
}
