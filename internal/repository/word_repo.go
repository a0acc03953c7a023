package repository

import (
	"wordrush/internal/database"
	"wordrush/internal/models"
)

// WordRepository handles vocabulary word database operations
type WordRepository struct {
	db database.DBTX
}

// NewWordRepository creates a new word repository
func NewWordRepository(db database.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// GetWordsByDifficulty retrieves the word pool for a difficulty tier
func (r *WordRepository) GetWordsByDifficulty(difficulty string) ([]models.Question, error) {
	query := `
		SELECT id, term, translation, pronunciation, example, level
		FROM words
		WHERE difficulty = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, difficulty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.Question
	for rows.Next() {
		var w models.Question
		err := rows.Scan(
			&w.ID,
			&w.Term,
			&w.Translation,
			&w.Pronunciation,
			&w.Example,
			&w.Level,
		)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// GetWordByID retrieves a single word
func (r *WordRepository) GetWordByID(id int64) (*models.Question, error) {
	query := `
		SELECT id, term, translation, pronunciation, example, level
		FROM words
		WHERE id = ?
	`

	word := &models.Question{}
	err := r.db.QueryRow(query, id).Scan(
		&word.ID,
		&word.Term,
		&word.Translation,
		&word.Pronunciation,
		&word.Example,
		&word.Level,
	)
	if err != nil {
		return nil, err
	}

	return word, nil
}

// CountWords returns the total number of words in the pool
func (r *WordRepository) CountWords() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count)
	return count, err
}

// SeedWords bulk-inserts a word set under a difficulty tier. Used on
// first startup when the words table is empty.
func (r *WordRepository) SeedWords(difficulty string, words []models.Question) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO words (difficulty, term, translation, pronunciation, example, level)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, w := range words {
		if _, err := tx.Exec(query, difficulty, w.Term, w.Translation, w.Pronunciation, w.Example, w.Level); err != nil {
			return err
		}
	}

	return tx.Commit()
}
