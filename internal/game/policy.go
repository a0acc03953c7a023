package game

import (
	"math/rand"

	"github.com/samber/lo"

	"wordrush/internal/models"
)

// advanceNormal moves past the current question. Running off the end of
// the stage either pulls the next level's subset from the full pool or
// ends the session; there is no way to advance the index out of range.
func (r *Rules) advanceNormal(s Session) Session {
	next := s.CurrentIndex + 1
	if next < len(s.Words) {
		s.CurrentIndex = next
		s.TimeLeft = questionTime
		if cur, ok := s.Current(); ok {
			s.Options = buildOptions(cur, s.Words, s.AllWords, r.rng)
		}
		return s
	}

	subset := stageSubset(s.AllWords, s.Stage+1)
	if len(subset) == 0 {
		return finishSession(s)
	}

	s.Stage++
	s.Words = takeShuffled(subset, normalStageSize, r.rng)
	s.CurrentIndex = 0
	s.TimeLeft = questionTime
	if cur, ok := s.Current(); ok {
		s.Options = buildOptions(cur, s.Words, s.AllWords, r.rng)
	}
	return s
}

// finishSession is the single terminal transition: it computes the
// final score for the session's mode and locks further mutation by
// moving to the finished status.
func finishSession(s Session) Session {
	switch s.Mode {
	case ModeNormal:
		s.FinalScore = s.Score
	case ModeSpeed:
		s.FinalScore = s.Score - s.WrongAnswers*5
	case ModeConnect:
		if len(s.Words) > 0 && len(s.MatchedPairs) == len(s.Words) && s.Lives > 0 {
			s.FinalScore = s.Lives * 10
		} else {
			s.FinalScore = len(s.MatchedPairs) * 5
		}
	}
	s.Status = StatusFinished
	s.Feedback = FeedbackNone
	s.IsPaused = false
	s.IsSpeaking = false
	return s
}

// stageSubset filters the pool down to one stage's questions.
func stageSubset(pool []models.Question, stage int) []models.Question {
	return lo.Filter(pool, func(q models.Question, _ int) bool {
		return q.Level == stage
	})
}

// anyTagged reports whether the pool carries stage tags at all.
func anyTagged(pool []models.Question) bool {
	return lo.SomeBy(pool, models.Question.HasLevel)
}

// takeShuffled returns up to n questions from a Fisher-Yates shuffled
// copy of the pool. The input is never mutated.
func takeShuffled(pool []models.Question, n int, rng *rand.Rand) []models.Question {
	out := append([]models.Question(nil), pool...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
