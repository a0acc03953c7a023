package game

import (
	"math/rand"

	"wordrush/internal/models"
)

// PairSide identifies a column of the connect-mode board.
type PairSide int

const (
	SideLeft PairSide = iota
	SideRight
)

func (s PairSide) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// PairItem is one tile on the connect board. Left tiles show the term,
// right tiles the translation; both carry the question ID they belong to.
type PairItem struct {
	QuestionID int64
	Text       string
	Matched    bool
	Mismatch   bool // transient marker after a failed attempt
}

// PairBoard holds the two independently shuffled columns and which left
// tile, if any, is pending selection.
type PairBoard struct {
	Left         []PairItem
	Right        []PairItem
	SelectedLeft int // index into Left, -1 when nothing is pending
}

// newPairBoard builds a board from the connect-mode question subset,
// shuffling each column on its own so matching positions never line up
// by construction.
func newPairBoard(words []models.Question, rng *rand.Rand) *PairBoard {
	left := make([]PairItem, len(words))
	right := make([]PairItem, len(words))
	for i, q := range words {
		left[i] = PairItem{QuestionID: q.ID, Text: q.Term}
		right[i] = PairItem{QuestionID: q.ID, Text: q.Translation}
	}
	rng.Shuffle(len(left), func(i, j int) {
		left[i], left[j] = left[j], left[i]
	})
	rng.Shuffle(len(right), func(i, j int) {
		right[i], right[j] = right[j], right[i]
	})
	return &PairBoard{Left: left, Right: right, SelectedLeft: -1}
}

func (b PairBoard) clone() PairBoard {
	c := b
	c.Left = append([]PairItem(nil), b.Left...)
	c.Right = append([]PairItem(nil), b.Right...)
	return c
}

// HasMismatch reports whether any tile still carries the transient
// mismatch marker.
func (b *PairBoard) HasMismatch() bool {
	for _, it := range b.Left {
		if it.Mismatch {
			return true
		}
	}
	for _, it := range b.Right {
		if it.Mismatch {
			return true
		}
	}
	return false
}

// applySelectPair handles connect-mode tile selection. A left pick only
// records the pending selection; a right pick with a pending left tile
// resolves the attempt. The pending selection resets after every
// resolution, match or not. Terminal detection happens here, inside the
// pairing transition, so lives can never be observed at zero while the
// session is still playing.
func applySelectPair(s Session, ev SelectPair) Session {
	if s.Status != StatusPlaying || s.Mode != ModeConnect || s.Board == nil {
		return s
	}

	board := s.Board.clone()
	s.Board = &board

	switch ev.Side {
	case SideLeft:
		if ev.Index < 0 || ev.Index >= len(board.Left) || board.Left[ev.Index].Matched {
			return s
		}
		board.SelectedLeft = ev.Index
		return s

	case SideRight:
		if board.SelectedLeft < 0 {
			return s
		}
		if ev.Index < 0 || ev.Index >= len(board.Right) || board.Right[ev.Index].Matched {
			return s
		}
		leftIdx := board.SelectedLeft
		board.SelectedLeft = -1

		left := &board.Left[leftIdx]
		right := &board.Right[ev.Index]

		s.LastQuestionID = left.QuestionID
		s.LastSelected = right.Text

		if left.QuestionID == right.QuestionID {
			left.Matched = true
			right.Matched = true
			s.MatchedPairs = append(append([]int64(nil), s.MatchedPairs...), left.QuestionID)
			s.Score++
			s.Total++
			if len(s.MatchedPairs) == len(s.Words) {
				return finishSession(s)
			}
			return s
		}

		left.Mismatch = true
		right.Mismatch = true
		s.Lives--
		s.WrongAnswers++
		s.Total++
		if s.Lives <= 0 {
			s.Lives = 0
			return finishSession(s)
		}
		return s
	}
	return s
}

// applyClearMismatch removes the transient markers after their delay.
func applyClearMismatch(s Session) Session {
	if s.Board == nil {
		return s
	}
	board := s.Board.clone()
	for i := range board.Left {
		board.Left[i].Mismatch = false
	}
	for i := range board.Right {
		board.Right[i].Mismatch = false
	}
	s.Board = &board
	return s
}
