package models

import "time"

// GameSession is the persisted record of a single play-through.
type GameSession struct {
	ID             int64
	SessionUID     string // public identifier handed to the client
	PlayerName     string
	Mode           string
	Difficulty     string
	StartedAt      time.Time
	CompletedAt    *time.Time
	TotalAnswers   int
	CorrectAnswers int
	WrongAnswers   int
	FinalScore     int
}

// Answer is the persisted record of a single submitted answer.
type Answer struct {
	ID             int64
	GameSessionID  int64
	QuestionID     int64
	SelectedOption string
	IsCorrect      bool
	AnsweredAt     time.Time
}

// SessionReport is the summary emitted when a session reaches its
// terminal state, used for persistence and the report email.
type SessionReport struct {
	SessionUID     string
	PlayerName     string
	Mode           string
	Difficulty     string
	TotalQuestions int
	CorrectCount   int
	WrongCount     int
	FinalScore     int
}
