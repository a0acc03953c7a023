package game

import (
	"fmt"
	"strings"

	"wordrush/internal/models"
)

// Mode selects which of the three game variants a session plays.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSpeed
	ModeConnect
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSpeed:
		return "speed"
	case ModeConnect:
		return "connect"
	}
	return "unknown"
}

// ParseMode converts a client-supplied mode string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return ModeNormal, nil
	case "speed":
		return ModeSpeed, nil
	case "connect":
		return ModeConnect, nil
	}
	return ModeNormal, fmt.Errorf("unsupported game mode: %q", s)
}

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusPlaying
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	}
	return "unknown"
}

// Feedback is the transient answer verdict shown between questions.
// Any non-none feedback freezes the clock.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackWrong
	FeedbackTimeout
)

func (f Feedback) String() string {
	switch f {
	case FeedbackNone:
		return "none"
	case FeedbackCorrect:
		return "correct"
	case FeedbackWrong:
		return "wrong"
	case FeedbackTimeout:
		return "timeout"
	}
	return "unknown"
}

// Direction is a resolved answer gesture. The ordinal doubles as the
/// index into the current option set: up=0, down=1, left=2, right=3.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// ParseDirection converts a client-supplied direction name.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return 0, false
}

// Per-mode constants. The normal-mode countdown restarts at
// questionTime on every question; a speed session has a fixed tick
// budget regardless of how many questions get answered.
const (
	questionTime    = 5
	speedRunBudget  = 100
	startingLives   = 3
	normalStageSize = 4
	normalPoolCap   = 20
	connectPairs    = 10
)

// Session is the single mutable aggregate owned by the engine. All
// mutation happens through Rules.Apply; everything else sees copies.
type Session struct {
	Status     Status
	Mode       Mode
	Difficulty string
	PlayerName string

	Words        []models.Question
	AllWords     []models.Question
	CurrentIndex int
	Options      []string

	// LastSelected and LastQuestionID describe the most recent answer
	// attempt, for the progress recorder and the UI.
	LastSelected   string
	LastQuestionID int64

	Score        int
	WrongAnswers int
	Total        int
	FinalScore   int

	Stage int // normal mode only

	Lives        int     // connect mode only
	MatchedPairs []int64 // connect mode only, matched question IDs
	Board        *PairBoard

	Feedback Feedback

	TimeLeft         int // normal mode countdown
	SpeedRunTimeLeft int // speed mode countdown
	ConnectTime      int // connect mode count-up

	IsPaused   bool
	IsSpeaking bool
}

// Current returns the question at the current index, or false when the
// session has no words yet.
func (s Session) Current() (models.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Words) {
		return models.Question{}, false
	}
	return s.Words[s.CurrentIndex], true
}

// Clone returns a deep copy so snapshots handed outside the engine
// cannot alias the engine-owned state.
func (s Session) Clone() Session {
	c := s
	c.Words = append([]models.Question(nil), s.Words...)
	c.AllWords = append([]models.Question(nil), s.AllWords...)
	c.Options = append([]string(nil), s.Options...)
	c.MatchedPairs = append([]int64(nil), s.MatchedPairs...)
	if s.Board != nil {
		b := s.Board.clone()
		c.Board = &b
	}
	return c
}

// matched reports whether a question ID is already in the matched set.
func (s Session) matched(id int64) bool {
	for _, m := range s.MatchedPairs {
		if m == id {
			return true
		}
	}
	return false
}
