package models

// Question is a single vocabulary item presented during a game session.
// The engine never mutates a Question; content comes from the word
// repository (or the built-in fallback set) and is treated as read-only.
type Question struct {
	ID            int64
	Term          string
	Translation   string
	Pronunciation string // optional phonetic hint
	Example       string // optional example sentence
	Level         int    // optional stage tag, 0 = untagged
}

// HasLevel reports whether the question carries a stage tag.
func (q Question) HasLevel() bool {
	return q.Level > 0
}
