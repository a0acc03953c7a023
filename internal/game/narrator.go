package game

import (
	"context"
	"sync"
	"time"
)

// Narrator is the narration capability consumed by the sequencer.
// Speak blocks until playback of one utterance has completed or the
// context is cancelled. Narration is a best-effort accessibility aid:
// implementations that cannot play audio return quickly and the
// session proceeds as if narration completed instantly.
type Narrator interface {
	Available() bool
	Speak(ctx context.Context, text, languageTag string, rate float64) error
}

// speechGap is the fixed pause between repeated utterances.
const speechGap = 500 * time.Millisecond

// Speech describes one narration run: a list of utterances where the
// first is repeated Repeats times, followed by the rest spoken once
// each. First presentation in normal mode uses two repeats, everything
// else one.
type Speech struct {
	Utterances  []string
	Repeats     int
	LanguageTag string
	Rate        float64
}

// Sequencer plays Speech runs in order, bracketing each run with start
// and done callbacks. Starting a new run cancels any run in flight; a
// cancelled run invokes neither callback again, so stale completions
// can never reach the session.
type Sequencer struct {
	narrator Narrator

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSequencer wraps a narrator. A nil narrator behaves as an
// unavailable one.
func NewSequencer(n Narrator) *Sequencer {
	return &Sequencer{narrator: n}
}

// Play starts a narration run. onStart fires before the first
// utterance, onDone after the last gap, always from a separate
// goroutine. When the narrator is absent or unavailable both fire
// immediately so progression never blocks on audio.
func (sq *Sequencer) Play(sp Speech, onStart, onDone func()) {
	sq.mu.Lock()
	if sq.cancel != nil {
		sq.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	sq.cancel = cancel
	sq.mu.Unlock()

	go func() {
		defer cancel()

		if onStart != nil {
			onStart()
		}

		if sq.narrator != nil && sq.narrator.Available() {
			sq.run(ctx, sp)
		}

		if ctx.Err() != nil {
			return
		}
		if onDone != nil {
			onDone()
		}
	}()
}

// run speaks the utterance list with the fixed gap between plays.
// Individual speak failures are swallowed; the run still completes.
func (sq *Sequencer) run(ctx context.Context, sp Speech) {
	repeats := sp.Repeats
	if repeats < 1 {
		repeats = 1
	}

	var queue []string
	for _, u := range sp.Utterances {
		if u == "" {
			continue
		}
		n := 1
		if len(queue) == 0 {
			n = repeats
		}
		for i := 0; i < n; i++ {
			queue = append(queue, u)
		}
	}

	for i, text := range queue {
		if ctx.Err() != nil {
			return
		}
		_ = sq.narrator.Speak(ctx, text, sp.LanguageTag, sp.Rate)
		if i < len(queue)-1 {
			select {
			case <-time.After(speechGap):
			case <-ctx.Done():
				return
			}
		}
	}
}

// Cancel aborts any narration in flight. The aborted run's completion
// callback never fires.
func (sq *Sequencer) Cancel() {
	sq.mu.Lock()
	defer sq.mu.Unlock()
	if sq.cancel != nil {
		sq.cancel()
		sq.cancel = nil
	}
}
