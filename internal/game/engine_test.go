package game

import (
	"math/rand"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests fire ticks by hand. Stop only flips the running
// flag; the callback stays callable so the generation guard can be
// exercised with genuinely stale ticks.
type fakeClock struct {
	mu      sync.Mutex
	onTick  func()
	running bool
}

func (c *fakeClock) Start(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = f
	c.running = true
}

func (c *fakeClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

func (c *fakeClock) isRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *fakeClock) tick() {
	c.mu.Lock()
	f := c.onTick
	c.mu.Unlock()
	if f != nil {
		f()
	}
}

type recordedAnswer struct {
	questionID int64
	correct    bool
	selected   string
}

type recordedEnd struct {
	total, correct, wrong, finalScore int
}

type captureRecorder struct {
	mu      sync.Mutex
	answers []recordedAnswer
	ends    []recordedEnd
}

func (r *captureRecorder) RecordAnswer(id int64, correct bool, selected string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = append(r.answers, recordedAnswer{id, correct, selected})
}

func (r *captureRecorder) RecordSessionEnd(total, correct, wrong, finalScore int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends = append(r.ends, recordedEnd{total, correct, wrong, finalScore})
}

func (r *captureRecorder) answerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.answers)
}

func (r *captureRecorder) endCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ends)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestEngine(mode Mode) (*Engine, *fakeClock, *captureRecorder) {
	fc := &fakeClock{}
	rec := &captureRecorder{}
	e := NewEngine(Config{
		Rules:    NewRules(rand.New(rand.NewSource(1))),
		Clock:    fc,
		Recorder: rec,
	})
	e.Dispatch(Start{PlayerName: "ana", Difficulty: "a1", Mode: mode})
	return e, fc, rec
}

func TestEngineNormalAnswerFlow(t *testing.T) {
	e, fc, rec := newTestEngine(ModeNormal)
	s := e.Dispatch(LoadSuccess{Words: taggedPool()})
	if s.Status != StatusPlaying {
		t.Fatalf("status = %v, want playing", s.Status)
	}
	if !fc.isRunning() {
		t.Error("clock not started on play")
	}

	// Without narration capability the presentation completes
	// immediately.
	waitFor(t, "initial narration to finish", func() bool {
		return !e.Snapshot().IsSpeaking
	})

	s = e.Snapshot()
	cur, _ := s.Current()
	dir := Direction(indexOf(s.Options, cur.Translation))
	e.Dispatch(SubmitAnswer{Direction: dir})

	// The feedback narration chain requests the next question on its
	// own.
	waitFor(t, "auto-advance past feedback", func() bool {
		got := e.Snapshot()
		return got.Feedback == FeedbackNone && got.CurrentIndex == 1
	})

	s = e.Snapshot()
	if s.Score != 1 || s.Total != 1 {
		t.Errorf("score=%d total=%d, want 1/1", s.Score, s.Total)
	}
	if s.TimeLeft != 5 {
		t.Errorf("timeLeft = %d, want reset to 5 on the next question", s.TimeLeft)
	}

	waitFor(t, "answer to reach the recorder", func() bool {
		return rec.answerCount() == 1
	})
	rec.mu.Lock()
	got := rec.answers[0]
	rec.mu.Unlock()
	if got.questionID != cur.ID || !got.correct || got.selected != cur.Translation {
		t.Errorf("recorded answer = %+v, want (%d, true, %q)", got, cur.ID, cur.Translation)
	}
}

func TestEngineTimeoutChain(t *testing.T) {
	e, fc, rec := newTestEngine(ModeNormal)
	e.Dispatch(LoadSuccess{Words: taggedPool()})

	// Ticks while narration is active are frozen, so keep ticking
	// until the countdown has actually expired.
	for i := 0; i < 50 && e.Snapshot().Total == 0; i++ {
		fc.tick()
		time.Sleep(time.Millisecond)
	}

	// The expiring tick turns into a timeout in the same dispatch, so
	// timeLeft zero with no feedback is never observable; the feedback
	// chain then moves to the next question.
	waitFor(t, "timeout to advance the session", func() bool {
		got := e.Snapshot()
		return got.Total == 1 && got.Feedback == FeedbackNone && got.CurrentIndex == 1
	})

	s := e.Snapshot()
	if s.WrongAnswers != 1 {
		t.Errorf("wrongAnswers = %d, want 1 after timeout", s.WrongAnswers)
	}

	waitFor(t, "timeout to reach the recorder", func() bool {
		return rec.answerCount() == 1
	})
	rec.mu.Lock()
	got := rec.answers[0]
	rec.mu.Unlock()
	if got.correct || got.selected != "" {
		t.Errorf("recorded timeout = %+v, want incorrect with empty selection", got)
	}
}

func TestEnginePauseGatesClock(t *testing.T) {
	e, fc, _ := newTestEngine(ModeNormal)
	e.Dispatch(LoadSuccess{Words: taggedPool()})

	e.Dispatch(Pause{})
	if fc.isRunning() {
		t.Error("clock still running while paused")
	}

	e.Dispatch(Resume{})
	if !fc.isRunning() {
		t.Error("clock not restarted on resume")
	}
}

func TestEngineStaleTickDropped(t *testing.T) {
	e, fc, _ := newTestEngine(ModeSpeed)
	e.Dispatch(LoadSuccess{Words: taggedPool()})

	before := e.Snapshot()
	e.Stop()
	fc.tick() // issued for the old generation

	after := e.Snapshot()
	if after.SpeedRunTimeLeft != before.SpeedRunTimeLeft {
		t.Errorf("stale tick mutated the session: %d -> %d",
			before.SpeedRunTimeLeft, after.SpeedRunTimeLeft)
	}
}

func TestEngineSpeedExpiryEndsSession(t *testing.T) {
	e, fc, rec := newTestEngine(ModeSpeed)
	e.Dispatch(LoadSuccess{Words: taggedPool()})

	for i := 0; i < 100; i++ {
		fc.tick()
	}

	s := e.Snapshot()
	if s.Status != StatusFinished {
		t.Fatalf("status = %v, want finished after the tick budget", s.Status)
	}
	if fc.isRunning() {
		t.Error("clock still running after finish")
	}

	waitFor(t, "session end to reach the recorder", func() bool {
		return rec.endCount() == 1
	})
	rec.mu.Lock()
	end := rec.ends[0]
	rec.mu.Unlock()
	if end.total != 0 || end.finalScore != 0 {
		t.Errorf("session end = %+v, want empty run", end)
	}
}

func TestEngineConnectMismatchSelfClears(t *testing.T) {
	e, _, _ := newTestEngine(ModeConnect)
	e.Dispatch(LoadSuccess{Words: untaggedPool(12)})

	s := e.Snapshot()
	li, ri := findPair(s.Board, false)
	e.Dispatch(SelectPair{Side: SideLeft, Index: li})
	s = e.Dispatch(SelectPair{Side: SideRight, Index: ri})

	if !s.Board.HasMismatch() {
		t.Fatal("mismatch markers not set")
	}
	if s.Lives != 2 {
		t.Errorf("lives = %d, want 2", s.Lives)
	}

	waitFor(t, "mismatch markers to self-clear", func() bool {
		return !e.Snapshot().Board.HasMismatch()
	})
}

func TestEngineResetCancelsEverything(t *testing.T) {
	e, fc, _ := newTestEngine(ModeNormal)
	e.Dispatch(LoadSuccess{Words: taggedPool()})

	s := e.Dispatch(Reset{})
	if s.Status != StatusIdle {
		t.Fatalf("status = %v, want idle", s.Status)
	}
	if fc.isRunning() {
		t.Error("clock still running after reset")
	}

	fc.tick() // stale
	if got := e.Snapshot(); got.Status != StatusIdle {
		t.Error("stale tick revived a reset session")
	}
}
