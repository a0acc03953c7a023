package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// mismatchClearDelay is how long the transient mismatch markers stay on
// the connect board.
const mismatchClearDelay = 500 * time.Millisecond

// ProgressRecorder receives fire-and-forget notifications about play.
// The engine persists nothing itself; implementations live with the
// repository and report layers.
type ProgressRecorder interface {
	RecordAnswer(questionID int64, isCorrect bool, selectedOption string)
	RecordSessionEnd(total, correct, wrong, finalScore int)
}

// NopRecorder discards all notifications.
type NopRecorder struct{}

func (NopRecorder) RecordAnswer(int64, bool, string)    {}
func (NopRecorder) RecordSessionEnd(int, int, int, int) {}

// Config wires an Engine's collaborators. Zero-value fields get safe
// defaults so tests can construct engines piecemeal.
type Config struct {
	Rules       *Rules
	Clock       Clock
	Narrator    Narrator
	Recorder    ProgressRecorder
	Logger      zerolog.Logger
	LanguageTag string
	SpeechRate  float64
}

// Engine owns one Session. All events, whether they come from HTTP
// handlers, the clock, or narration completions, funnel through a
// single mutex-guarded dispatch, so no two events are ever applied
// concurrently. Side effects are derived from state diffs after each
// transition; asynchronous callbacks carry the generation they were
// issued for and are dropped once the session has been reset or
// finished.
type Engine struct {
	ID string

	mu    sync.Mutex
	gen   int
	state Session

	rules    *Rules
	clock    Clock
	seq      *Sequencer
	recorder ProgressRecorder
	logger   zerolog.Logger

	languageTag string
	speechRate  float64
}

// NewEngine creates an idle engine.
func NewEngine(cfg Config) *Engine {
	if cfg.Rules == nil {
		cfg.Rules = NewRules(nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = NewTickerClock(time.Second)
	}
	if cfg.Recorder == nil {
		cfg.Recorder = NopRecorder{}
	}
	if cfg.LanguageTag == "" {
		cfg.LanguageTag = "en"
	}
	if cfg.SpeechRate <= 0 {
		cfg.SpeechRate = 1.0
	}
	return &Engine{
		ID:          uuid.NewString(),
		rules:       cfg.Rules,
		clock:       cfg.Clock,
		seq:         NewSequencer(cfg.Narrator),
		recorder:    cfg.Recorder,
		logger:      cfg.Logger,
		languageTag: cfg.LanguageTag,
		speechRate:  cfg.SpeechRate,
	}
}

// Dispatch applies one event and returns a snapshot of the resulting
// state.
func (e *Engine) Dispatch(ev Event) Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyLocked(ev)
	return e.state.Clone()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Stop tears the engine down: the clock halts, in-flight narration is
// cancelled, and any callbacks still in the air become stale.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.clock.Stop()
	e.seq.Cancel()
}

// dispatchAsync is the entry point for clock ticks, narration
// completions and scheduled timers. Events issued for a superseded
// generation are dropped; this is the guard that keeps a stale
// completion from mutating a session that has been reset or replaced.
func (e *Engine) dispatchAsync(gen int, ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.applyLocked(ev)
}

func (e *Engine) applyLocked(ev Event) {
	prev := e.state
	e.state = e.rules.Apply(prev, ev)
	e.runEffects(prev, e.state, ev)
}

// runEffects inspects the state diff produced by one transition and
// issues the side effects it implies. It may apply follow-up events
// (timeout detection) within the same dispatch.
func (e *Engine) runEffects(prev, next Session, ev Event) {
	if _, isReset := ev.(Reset); isReset {
		e.gen++
		e.clock.Stop()
		e.seq.Cancel()
		return
	}

	// Answer attempt: the total counter only moves on a resolved
	// answer, a timeout, or a pair attempt.
	if next.Total > prev.Total {
		correct := next.Score > prev.Score
		qid := next.LastQuestionID
		selected := next.LastSelected
		go e.recorder.RecordAnswer(qid, correct, selected)
	}

	// Terminal state: stop everything and emit the session summary.
	if next.Status == StatusFinished && prev.Status != StatusFinished {
		e.gen++
		e.clock.Stop()
		e.seq.Cancel()
		e.logger.Info().
			Str("session", e.ID).
			Str("mode", next.Mode.String()).
			Int("total", next.Total).
			Int("score", next.Score).
			Int("final_score", next.FinalScore).
			Msg("session finished")
		go e.recorder.RecordSessionEnd(next.Total, next.Score, next.WrongAnswers, next.FinalScore)
		return
	}

	if next.Status != StatusPlaying {
		return
	}

	// Clock gating: running exactly while playing and not paused.
	startedPlaying := prev.Status != StatusPlaying
	if startedPlaying || (prev.IsPaused && !next.IsPaused) {
		gen := e.gen
		e.clock.Start(func() { e.dispatchAsync(gen, Tick{}) })
	}
	if next.IsPaused && !prev.IsPaused {
		e.clock.Stop()
	}

	// Normal-mode countdown expiry becomes a timeout in the same
	// dispatch, so time-left zero with no feedback is never observable.
	if _, isTick := ev.(Tick); isTick &&
		next.Mode == ModeNormal && next.Feedback == FeedbackNone &&
		next.TimeLeft == 0 && prev.TimeLeft > 0 {
		e.applyLocked(Timeout{})
		return
	}

	// New question presented: narrate it. Covers initial load, index
	// advances and stage transitions (where the index can stay 0).
	presented := false
	if next.Mode != ModeConnect {
		if startedPlaying {
			presented = true
		} else if prev.Feedback != FeedbackNone && next.Feedback == FeedbackNone {
			if _, isNext := ev.(Next); isNext {
				presented = true
			}
		}
	}
	if presented {
		e.narrateQuestion(next)
	}

	// Answer resolved: replay the term (and example) once, then move on.
	if next.Mode != ModeConnect &&
		prev.Feedback == FeedbackNone && next.Feedback != FeedbackNone {
		e.narrateFeedback(next)
	}

	// Connect mismatch markers self-clear after a fixed delay.
	if next.Mode == ModeConnect && next.Board != nil && next.Board.HasMismatch() &&
		(prev.Board == nil || !prev.Board.HasMismatch()) {
		gen := e.gen
		time.AfterFunc(mismatchClearDelay, func() {
			e.dispatchAsync(gen, ClearMismatch{})
		})
	}
}

// narrateQuestion speaks a newly presented term: twice in normal mode,
// once in speed mode.
func (e *Engine) narrateQuestion(s Session) {
	cur, ok := s.Current()
	if !ok {
		return
	}
	repeats := 1
	if s.Mode == ModeNormal {
		repeats = 2
	}
	gen := e.gen
	e.seq.Play(
		Speech{
			Utterances:  []string{cur.Term},
			Repeats:     repeats,
			LanguageTag: e.languageTag,
			Rate:        e.speechRate,
		},
		func() { e.dispatchAsync(gen, SpeechStarted{}) },
		func() { e.dispatchAsync(gen, SpeechEnded{}) },
	)
}

// narrateFeedback replays the answered term and its example sentence,
// then requests the next question. This is the completion chain that
// drives the session forward without user input after an answer.
func (e *Engine) narrateFeedback(s Session) {
	cur, ok := s.Current()
	if !ok {
		return
	}
	gen := e.gen
	e.seq.Play(
		Speech{
			Utterances:  []string{cur.Term, cur.Example},
			Repeats:     1,
			LanguageTag: e.languageTag,
			Rate:        e.speechRate,
		},
		func() { e.dispatchAsync(gen, SpeechStarted{}) },
		func() {
			e.dispatchAsync(gen, SpeechEnded{})
			e.dispatchAsync(gen, Next{})
		},
	)
}
