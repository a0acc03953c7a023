package game

import "wordrush/internal/models"

// Event is a discrete input to the session state machine. Every state
// change, including clock ticks and narration completions, arrives as
// an Event through a single dispatch point.
type Event interface {
	eventName() string
}

// Start resets to a fresh loading session for the given mode.
type Start struct {
	PlayerName string
	Difficulty string
	Mode       Mode
}

// LoadSuccess delivers the retrieved question pool. The transition
// shapes it per mode (stage-1 subset, full pool, or connect board).
type LoadSuccess struct {
	Words []models.Question
}

// Tick advances the mode-specific counter by one second. Subject to
// the freeze rule: paused, pending feedback, or (normal mode) active
// narration make it a no-op.
type Tick struct{}

// SubmitAnswer resolves a direction against the current option set.
type SubmitAnswer struct {
	Direction Direction
}

// Timeout fires when the normal-mode countdown reaches zero with no
// feedback pending. Counts as a wrong answer.
type Timeout struct{}

// Next clears feedback and advances to the following question,
// delegating stage/finish decisions to the per-mode policy.
type Next struct{}

// Finish forces the terminal state and computes the final score.
type Finish struct{}

// Pause and Resume toggle the paused flag.
type Pause struct{}
type Resume struct{}

// Reset discards the session and returns to idle.
type Reset struct{}

// SpeechStarted and SpeechEnded bracket narration playback.
type SpeechStarted struct{}
type SpeechEnded struct{}

// SelectPair registers a column selection in connect mode. Picking a
// left item then a right item resolves the pair attempt.
type SelectPair struct {
	Side  PairSide
	Index int
}

// ClearMismatch removes the transient mismatch markers set by a failed
// pair attempt.
type ClearMismatch struct{}

func (Start) eventName() string         { return "start" }
func (LoadSuccess) eventName() string   { return "load_success" }
func (Tick) eventName() string          { return "tick" }
func (SubmitAnswer) eventName() string  { return "submit_answer" }
func (Timeout) eventName() string       { return "timeout" }
func (Next) eventName() string          { return "next" }
func (Finish) eventName() string        { return "finish" }
func (Pause) eventName() string         { return "pause" }
func (Resume) eventName() string        { return "resume" }
func (Reset) eventName() string         { return "reset" }
func (SpeechStarted) eventName() string { return "speech_started" }
func (SpeechEnded) eventName() string   { return "speech_ended" }
func (SelectPair) eventName() string    { return "select_pair" }
func (ClearMismatch) eventName() string { return "clear_mismatch" }

// Name exposes the event name for logging.
func Name(e Event) string {
	if e == nil {
		return "nil"
	}
	return e.eventName()
}
