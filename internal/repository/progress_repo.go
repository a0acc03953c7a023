package repository

import (
	"database/sql"
	"time"

	"wordrush/internal/database"
	"wordrush/internal/models"
)

// ProgressRepository handles game session and answer persistence
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CreateSession records a newly started game session
func (r *ProgressRepository) CreateSession(sessionUID, playerName, mode, difficulty string) (*models.GameSession, error) {
	query := `
		INSERT INTO game_sessions (session_uid, player_name, mode, difficulty)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, sessionUID, playerName, mode, difficulty)
	if err != nil {
		return nil, err
	}

	return r.GetSessionByID(id)
}

// GetSessionByID retrieves a game session by row ID
func (r *ProgressRepository) GetSessionByID(id int64) (*models.GameSession, error) {
	query := `
		SELECT id, session_uid, player_name, mode, difficulty, started_at,
		       completed_at, total_answers, correct_answers, wrong_answers, final_score
		FROM game_sessions
		WHERE id = ?
	`

	return r.scanSession(r.db.QueryRow(query, id))
}

// GetSessionByUID retrieves a game session by its public identifier
func (r *ProgressRepository) GetSessionByUID(sessionUID string) (*models.GameSession, error) {
	query := `
		SELECT id, session_uid, player_name, mode, difficulty, started_at,
		       completed_at, total_answers, correct_answers, wrong_answers, final_score
		FROM game_sessions
		WHERE session_uid = ?
	`

	return r.scanSession(r.db.QueryRow(query, sessionUID))
}

func (r *ProgressRepository) scanSession(row *sql.Row) (*models.GameSession, error) {
	session := &models.GameSession{}
	var completedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.SessionUID,
		&session.PlayerName,
		&session.Mode,
		&session.Difficulty,
		&session.StartedAt,
		&completedAt,
		&session.TotalAnswers,
		&session.CorrectAnswers,
		&session.WrongAnswers,
		&session.FinalScore,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}

	return session, nil
}

// RecordAnswer records a single submitted answer for a session
func (r *ProgressRepository) RecordAnswer(gameSessionID, questionID int64, selectedOption string, isCorrect bool) (*models.Answer, error) {
	query := `
		INSERT INTO answers (game_session_id, question_id, selected_option, is_correct)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, gameSessionID, questionID, selectedOption, isCorrect)
	if err != nil {
		return nil, err
	}

	return &models.Answer{
		ID:             id,
		GameSessionID:  gameSessionID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		AnsweredAt:     time.Now(),
	}, nil
}

// CompleteSession marks a session as finished and stores its totals
func (r *ProgressRepository) CompleteSession(gameSessionID int64, total, correct, wrong, finalScore int) error {
	query := `
		UPDATE game_sessions
		SET completed_at = ?, total_answers = ?, correct_answers = ?,
		    wrong_answers = ?, final_score = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, time.Now(), total, correct, wrong, finalScore, gameSessionID)
	return err
}

// GetSessionAnswers retrieves all answers for a session in order
func (r *ProgressRepository) GetSessionAnswers(gameSessionID int64) ([]models.Answer, error) {
	query := `
		SELECT id, game_session_id, question_id, selected_option, is_correct, answered_at
		FROM answers
		WHERE game_session_id = ?
		ORDER BY answered_at ASC
	`

	rows, err := r.db.Query(query, gameSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		err := rows.Scan(
			&a.ID,
			&a.GameSessionID,
			&a.QuestionID,
			&a.SelectedOption,
			&a.IsCorrect,
			&a.AnsweredAt,
		)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}

	return answers, rows.Err()
}

// GetRecentSessions retrieves the most recent sessions for a player
func (r *ProgressRepository) GetRecentSessions(playerName string, limit int) ([]models.GameSession, error) {
	query := `
		SELECT id, session_uid, player_name, mode, difficulty, started_at,
		       completed_at, total_answers, correct_answers, wrong_answers, final_score
		FROM game_sessions
		WHERE player_name = ?
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, playerName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.GameSession
	for rows.Next() {
		session := models.GameSession{}
		var completedAt sql.NullTime

		err := rows.Scan(
			&session.ID,
			&session.SessionUID,
			&session.PlayerName,
			&session.Mode,
			&session.Difficulty,
			&session.StartedAt,
			&completedAt,
			&session.TotalAnswers,
			&session.CorrectAnswers,
			&session.WrongAnswers,
			&session.FinalScore,
		)
		if err != nil {
			return nil, err
		}

		if completedAt.Valid {
			session.CompletedAt = &completedAt.Time
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
