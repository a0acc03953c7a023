package game

import (
	"math/rand"
	"time"

	"wordrush/internal/models"
)

// Rules is the pure transition function of the session state machine,
// parameterized by its randomness source so tests can run it
// deterministically. Apply never performs side effects; the engine
// observes the resulting state and drives the clock, narration and
// recorders from the diff.
type Rules struct {
	rng *rand.Rand
}

// NewRules creates a transition function with the given randomness
// source. A nil source gets a time-seeded one.
func NewRules(rng *rand.Rand) *Rules {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Rules{rng: rng}
}

// Apply computes the next session state for one event. Unknown or
// out-of-place events leave the state unchanged; nothing in here ever
// reaches outside the Session value.
func (r *Rules) Apply(s Session, e Event) Session {
	switch ev := e.(type) {
	case Start:
		return Session{
			Status:     StatusLoading,
			Mode:       ev.Mode,
			Difficulty: ev.Difficulty,
			PlayerName: ev.PlayerName,
		}

	case LoadSuccess:
		return r.applyLoad(s, ev)

	case Tick:
		return r.applyTick(s)

	case SubmitAnswer:
		return r.applySubmit(s, ev)

	case Timeout:
		return applyTimeout(s)

	case Next:
		return r.applyNext(s)

	case Finish:
		if s.Status != StatusPlaying {
			return s
		}
		return finishSession(s)

	case Pause:
		if s.Status == StatusPlaying {
			s.IsPaused = !s.IsPaused
		}
		return s

	case Resume:
		if s.Status == StatusPlaying {
			s.IsPaused = false
		}
		return s

	case Reset:
		return Session{}

	case SpeechStarted:
		if s.Status == StatusPlaying {
			s.IsSpeaking = true
		}
		return s

	case SpeechEnded:
		s.IsSpeaking = false
		return s

	case SelectPair:
		return applySelectPair(s, ev)

	case ClearMismatch:
		return applyClearMismatch(s)
	}
	return s
}

// applyLoad shapes the retrieved pool per mode and starts play. An
// empty pool should not happen (the content service substitutes the
// built-in set) but finishes the session rather than faulting.
func (r *Rules) applyLoad(s Session, ev LoadSuccess) Session {
	if s.Status != StatusLoading {
		return s
	}
	if len(ev.Words) == 0 {
		s.Status = StatusPlaying
		return finishSession(s)
	}

	switch s.Mode {
	case ModeNormal:
		if anyTagged(ev.Words) {
			s.AllWords = append([]models.Question(nil), ev.Words...)
			s.Stage = 1
			s.Words = takeShuffled(stageSubset(ev.Words, 1), normalStageSize, r.rng)
		} else {
			s.AllWords = nil
			s.Stage = 1
			s.Words = takeShuffled(ev.Words, normalPoolCap, r.rng)
		}
		s.TimeLeft = questionTime

	case ModeSpeed:
		s.Words = append([]models.Question(nil), ev.Words...)
		s.AllWords = append([]models.Question(nil), ev.Words...)
		s.SpeedRunTimeLeft = speedRunBudget

	case ModeConnect:
		s.Words = takeShuffled(ev.Words, connectPairs, r.rng)
		s.Lives = startingLives
		s.ConnectTime = 0
		s.Board = newPairBoard(s.Words, r.rng)
	}

	s.Status = StatusPlaying
	s.CurrentIndex = 0
	if s.Mode != ModeConnect {
		if cur, ok := s.Current(); ok {
			s.Options = buildOptions(cur, s.Words, s.AllWords, r.rng)
		}
	}
	return s
}

// applyTick advances exactly one mode-specific counter. The freeze
// rule: a tick is a no-op while paused, while feedback is pending, or
// in normal mode while narration is active.
func (r *Rules) applyTick(s Session) Session {
	if s.Status != StatusPlaying {
		return s
	}
	if s.IsPaused || s.Feedback != FeedbackNone {
		return s
	}
	if s.Mode == ModeNormal && s.IsSpeaking {
		return s
	}

	switch s.Mode {
	case ModeNormal:
		if s.TimeLeft > 0 {
			s.TimeLeft--
		}
	case ModeSpeed:
		if s.SpeedRunTimeLeft > 0 {
			s.SpeedRunTimeLeft--
		}
		if s.SpeedRunTimeLeft == 0 {
			return finishSession(s)
		}
	case ModeConnect:
		s.ConnectTime++
	}
	return s
}

// applySubmit resolves a directional answer against the option set.
// Directions pointing at a slot beyond the option set (possible when
// fewer than four options exist) select nothing.
func (r *Rules) applySubmit(s Session, ev SubmitAnswer) Session {
	if s.Status != StatusPlaying || s.Mode == ModeConnect {
		return s
	}
	if s.Feedback != FeedbackNone || s.IsPaused {
		return s
	}
	cur, ok := s.Current()
	if !ok {
		return s
	}
	idx := int(ev.Direction)
	if idx < 0 || idx >= len(s.Options) {
		return s
	}

	selected := s.Options[idx]
	s.LastSelected = selected
	s.LastQuestionID = cur.ID
	s.Total++
	if selected == cur.Translation {
		s.Score++
		s.Feedback = FeedbackCorrect
	} else {
		s.WrongAnswers++
		s.Feedback = FeedbackWrong
	}
	return s
}

// applyTimeout counts an expired normal-mode countdown as a wrong
// answer.
func applyTimeout(s Session) Session {
	if s.Status != StatusPlaying || s.Mode != ModeNormal {
		return s
	}
	if s.Feedback != FeedbackNone || s.TimeLeft > 0 {
		return s
	}
	s.WrongAnswers++
	s.Total++
	s.LastSelected = ""
	if cur, ok := s.Current(); ok {
		s.LastQuestionID = cur.ID
	}
	s.Feedback = FeedbackTimeout
	return s
}

// applyNext clears feedback and advances the session per mode.
func (r *Rules) applyNext(s Session) Session {
	if s.Status != StatusPlaying || s.Mode == ModeConnect {
		return s
	}
	s.Feedback = FeedbackNone
	s.LastSelected = ""

	switch s.Mode {
	case ModeNormal:
		return r.advanceNormal(s)
	case ModeSpeed:
		if len(s.Words) == 0 {
			return s
		}
		s.CurrentIndex = r.rng.Intn(len(s.Words))
		if cur, ok := s.Current(); ok {
			s.Options = buildOptions(cur, s.Words, s.AllWords, r.rng)
		}
	}
	return s
}
