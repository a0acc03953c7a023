package handlers

import (
	"time"

	"wordrush/internal/game"
	"wordrush/internal/models"
)

// SessionView is the JSON shape of a session snapshot. The answer key
// never leaves the server: the current question exposes its term and
// pronunciation but not which option is correct.
type SessionView struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
	PlayerName string `json:"playerName,omitempty"`

	Question      *QuestionView `json:"question,omitempty"`
	Options       []string      `json:"options,omitempty"`
	QuestionIndex int           `json:"questionIndex"`
	QuestionCount int           `json:"questionCount"`
	Stage         int           `json:"stage,omitempty"`

	Score      int    `json:"score"`
	Wrong      int    `json:"wrong"`
	Total      int    `json:"total"`
	FinalScore int    `json:"finalScore"`
	Feedback   string `json:"feedback"`

	TimeLeft         int `json:"timeLeft,omitempty"`
	SpeedRunTimeLeft int `json:"speedRunTimeLeft,omitempty"`
	ConnectTime      int `json:"connectTime,omitempty"`

	Lives int        `json:"lives,omitempty"`
	Board *BoardView `json:"board,omitempty"`

	IsPaused   bool `json:"isPaused"`
	IsSpeaking bool `json:"isSpeaking"`
}

// QuestionView exposes the prompt side of the current question.
type QuestionView struct {
	ID            int64  `json:"id"`
	Term          string `json:"term"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty"`
}

// BoardView is the connect-mode board as the client sees it.
type BoardView struct {
	Left         []TileView `json:"left"`
	Right        []TileView `json:"right"`
	SelectedLeft int        `json:"selectedLeft"`
	MatchedPairs int        `json:"matchedPairs"`
}

// TileView is one connect-board tile.
type TileView struct {
	Text     string `json:"text"`
	Matched  bool   `json:"matched"`
	Mismatch bool   `json:"mismatch"`
}

// NewSessionView converts an engine snapshot to its JSON shape.
func NewSessionView(s game.Session) SessionView {
	view := SessionView{
		Status:     s.Status.String(),
		Mode:       s.Mode.String(),
		Difficulty: s.Difficulty,
		PlayerName: s.PlayerName,

		Options:       s.Options,
		QuestionIndex: s.CurrentIndex,
		QuestionCount: len(s.Words),
		Stage:         s.Stage,

		Score:      s.Score,
		Wrong:      s.WrongAnswers,
		Total:      s.Total,
		FinalScore: s.FinalScore,
		Feedback:   s.Feedback.String(),

		TimeLeft:         s.TimeLeft,
		SpeedRunTimeLeft: s.SpeedRunTimeLeft,
		ConnectTime:      s.ConnectTime,

		Lives: s.Lives,

		IsPaused:   s.IsPaused,
		IsSpeaking: s.IsSpeaking,
	}

	if q, ok := s.Current(); ok && s.Mode != game.ModeConnect {
		view.Question = &QuestionView{
			ID:            q.ID,
			Term:          q.Term,
			Pronunciation: q.Pronunciation,
			Example:       q.Example,
		}
	}

	if s.Board != nil {
		board := &BoardView{
			Left:         make([]TileView, len(s.Board.Left)),
			Right:        make([]TileView, len(s.Board.Right)),
			SelectedLeft: s.Board.SelectedLeft,
			MatchedPairs: len(s.MatchedPairs),
		}
		for i, item := range s.Board.Left {
			board.Left[i] = TileView{Text: item.Text, Matched: item.Matched, Mismatch: item.Mismatch}
		}
		for i, item := range s.Board.Right {
			board.Right[i] = TileView{Text: item.Text, Matched: item.Matched, Mismatch: item.Mismatch}
		}
		view.Board = board
	}

	return view
}

// ResultsView is the persisted outcome of a session.
type ResultsView struct {
	SessionUID  string       `json:"sessionUid"`
	PlayerName  string       `json:"playerName"`
	Mode        string       `json:"mode"`
	Difficulty  string       `json:"difficulty,omitempty"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Total       int          `json:"total"`
	Correct     int          `json:"correct"`
	Wrong       int          `json:"wrong"`
	FinalScore  int          `json:"finalScore"`
	Answers     []AnswerView `json:"answers,omitempty"`
}

// AnswerView is one recorded answer.
type AnswerView struct {
	QuestionID     int64     `json:"questionId"`
	SelectedOption string    `json:"selectedOption"`
	IsCorrect      bool      `json:"isCorrect"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// NewResultsView converts a persisted session and its answers.
func NewResultsView(record *models.GameSession, answers []models.Answer) ResultsView {
	view := ResultsView{
		SessionUID:  record.SessionUID,
		PlayerName:  record.PlayerName,
		Mode:        record.Mode,
		Difficulty:  record.Difficulty,
		StartedAt:   record.StartedAt,
		CompletedAt: record.CompletedAt,
		Total:       record.TotalAnswers,
		Correct:     record.CorrectAnswers,
		Wrong:       record.WrongAnswers,
		FinalScore:  record.FinalScore,
	}
	for _, a := range answers {
		view.Answers = append(view.Answers, AnswerView{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
			AnsweredAt:     a.AnsweredAt,
		})
	}
	return view
}
