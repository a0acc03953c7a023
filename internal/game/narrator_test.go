package game

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeNarrator records utterances and can simulate an environment
// without narration capability.
type fakeNarrator struct {
	mu        sync.Mutex
	spoken    []string
	available bool
	delay     time.Duration
}

func (f *fakeNarrator) Available() bool { return f.available }

func (f *fakeNarrator) Speak(ctx context.Context, text, lang string, rate float64) error {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	f.mu.Unlock()
	return nil
}

func (f *fakeNarrator) utterances() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestSequencerRepeatsAndCompletes(t *testing.T) {
	n := &fakeNarrator{available: true}
	sq := NewSequencer(n)

	started := make(chan struct{})
	done := make(chan struct{})
	sq.Play(Speech{Utterances: []string{"perro"}, Repeats: 2}, func() { close(started) }, func() { close(done) })

	waitSignal(t, started, "start callback")
	waitSignal(t, done, "completion callback")

	got := n.utterances()
	if len(got) != 2 || got[0] != "perro" || got[1] != "perro" {
		t.Errorf("utterances = %v, want the term twice", got)
	}
}

func TestSequencerSpeaksFollowUpOnce(t *testing.T) {
	n := &fakeNarrator{available: true}
	sq := NewSequencer(n)

	done := make(chan struct{})
	sq.Play(Speech{Utterances: []string{"perro", "el perro ladra"}, Repeats: 2}, nil, func() { close(done) })
	waitSignal(t, done, "completion callback")

	got := n.utterances()
	want := []string{"perro", "perro", "el perro ladra"}
	if len(got) != len(want) {
		t.Fatalf("utterances = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("utterances = %v, want %v", got, want)
		}
	}
}

func TestSequencerUnavailableCompletesInstantly(t *testing.T) {
	sq := NewSequencer(&fakeNarrator{available: false})

	done := make(chan struct{})
	start := time.Now()
	sq.Play(Speech{Utterances: []string{"perro"}, Repeats: 2}, nil, func() { close(done) })
	waitSignal(t, done, "completion without narrator")

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("unavailable narrator took %v to complete", elapsed)
	}
}

func TestSequencerNilNarratorCompletes(t *testing.T) {
	sq := NewSequencer(nil)
	done := make(chan struct{})
	sq.Play(Speech{Utterances: []string{"perro"}}, nil, func() { close(done) })
	waitSignal(t, done, "completion with nil narrator")
}

func TestSequencerCancelSuppressesCompletion(t *testing.T) {
	n := &fakeNarrator{available: true, delay: 200 * time.Millisecond}
	sq := NewSequencer(n)

	completed := make(chan struct{}, 1)
	sq.Play(Speech{Utterances: []string{"perro"}, Repeats: 3}, nil, func() { completed <- struct{}{} })
	time.Sleep(50 * time.Millisecond)
	sq.Cancel()

	select {
	case <-completed:
		t.Error("cancelled run still invoked its completion callback")
	case <-time.After(800 * time.Millisecond):
	}
}

func TestSequencerNewPlayCancelsInFlight(t *testing.T) {
	n := &fakeNarrator{available: true, delay: 200 * time.Millisecond}
	sq := NewSequencer(n)

	firstDone := make(chan struct{}, 1)
	secondDone := make(chan struct{})
	sq.Play(Speech{Utterances: []string{"first"}, Repeats: 5}, nil, func() { firstDone <- struct{}{} })
	time.Sleep(50 * time.Millisecond)
	sq.Play(Speech{Utterances: []string{"second"}}, nil, func() { close(secondDone) })

	waitSignal(t, secondDone, "second run completion")
	select {
	case <-firstDone:
		t.Error("superseded run still invoked its completion callback")
	default:
	}
}
