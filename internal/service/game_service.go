package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordrush/internal/game"
	"wordrush/internal/models"
	"wordrush/internal/repository"
)

// Game service errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNameNotAllowed  = errors.New("player name not allowed")
	ErrEmptyWordPool   = errors.New("no words available for session")
)

// NameScreener checks player names against the screening list.
// Satisfied by *database.DB.
type NameScreener interface {
	ScreenName(name string) ([]string, error)
}

// StartParams describes a session start request.
type StartParams struct {
	PlayerName  string
	Mode        string
	Difficulty  string
	ReportEmail string // optional, emailed the summary when the session ends
}

// StartResult is what a successful start hands back to the client.
type StartResult struct {
	SessionUID string
	Token      string
	State      game.Session
}

// liveSession is one registry entry: the engine plus the bookkeeping
// the janitor and the recorder need.
type liveSession struct {
	engine      *game.Engine
	recordID    int64 // game_sessions row
	reportEmail string
	startedAt   time.Time

	mu          sync.Mutex
	lastTouched time.Time
}

func (ls *liveSession) touch() {
	ls.mu.Lock()
	ls.lastTouched = time.Now()
	ls.mu.Unlock()
}

func (ls *liveSession) idleSince() time.Time {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.lastTouched
}

// TokenIssuer signs session tokens at start.
type TokenIssuer interface {
	Issue(sessionUID, playerName string) (string, error)
}

// GameService owns the live engine registry. Every running session is
// one engine; finished or abandoned engines are swept by the janitor.
type GameService struct {
	content      *ContentService
	progressRepo *repository.ProgressRepository
	reports      *ReportService
	screener     NameScreener
	tokens       TokenIssuer

	narrator    game.Narrator
	languageTag string
	speechRate  float64
	sessionTTL  time.Duration

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// GameServiceConfig wires a GameService's collaborators.
type GameServiceConfig struct {
	Content      *ContentService
	ProgressRepo *repository.ProgressRepository
	Reports      *ReportService
	Screener     NameScreener
	Tokens       TokenIssuer
	Narrator     game.Narrator
	LanguageTag  string
	SpeechRate   float64
	SessionTTL   time.Duration
}

// NewGameService creates a new game service
func NewGameService(cfg GameServiceConfig) *GameService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	return &GameService{
		content:      cfg.Content,
		progressRepo: cfg.ProgressRepo,
		reports:      cfg.Reports,
		screener:     cfg.Screener,
		tokens:       cfg.Tokens,
		narrator:     cfg.Narrator,
		languageTag:  cfg.LanguageTag,
		speechRate:   cfg.SpeechRate,
		sessionTTL:   cfg.SessionTTL,
		sessions:     make(map[string]*liveSession),
	}
}

// StartSession creates a new engine, loads its word pool, persists the
// session record, and returns the signed token the client uses for all
// further requests.
func (s *GameService) StartSession(params StartParams) (*StartResult, error) {
	playerName := strings.TrimSpace(params.PlayerName)
	if playerName == "" {
		playerName = "Player"
	}

	if s.screener != nil {
		flagged, err := s.screener.ScreenName(playerName)
		if err != nil {
			return nil, fmt.Errorf("failed to screen player name: %w", err)
		}
		if len(flagged) > 0 {
			return nil, ErrNameNotAllowed
		}
	}

	mode, err := game.ParseMode(params.Mode)
	if err != nil {
		return nil, err
	}

	words, err := s.content.WordsForDifficulty(params.Difficulty)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyWordPool
	}

	sessionUID := uuid.NewString()

	var recordID int64
	if s.progressRepo != nil {
		record, err := s.progressRepo.CreateSession(sessionUID, playerName, mode.String(), params.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to persist session: %w", err)
		}
		recordID = record.ID
	}

	ls := &liveSession{
		recordID:    recordID,
		reportEmail: params.ReportEmail,
		startedAt:   time.Now(),
		lastTouched: time.Now(),
	}

	logger := log.With().Str("session", sessionUID).Logger()

	ls.engine = game.NewEngine(game.Config{
		Narrator:    s.narrator,
		Recorder:    s.newRecorder(sessionUID, playerName, mode.String(), params.Difficulty, ls),
		Logger:      logger,
		LanguageTag: s.languageTag,
		SpeechRate:  s.speechRate,
	})

	ls.engine.Dispatch(game.Start{PlayerName: playerName, Difficulty: params.Difficulty, Mode: mode})
	state := ls.engine.Dispatch(game.LoadSuccess{Words: words})

	s.mu.Lock()
	s.sessions[sessionUID] = ls
	s.mu.Unlock()

	token := ""
	if s.tokens != nil {
		token, err = s.tokens.Issue(sessionUID, playerName)
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("mode", mode.String()).
		Str("player", playerName).
		Int("pool", len(words)).
		Msg("session started")

	return &StartResult{SessionUID: sessionUID, Token: token, State: state}, nil
}

// Dispatch routes an event to a live session's engine.
func (s *GameService) Dispatch(sessionUID string, ev game.Event) (game.Session, error) {
	ls, err := s.lookup(sessionUID)
	if err != nil {
		return game.Session{}, err
	}
	ls.touch()
	return ls.engine.Dispatch(ev), nil
}

// Snapshot returns the current state of a live session.
func (s *GameService) Snapshot(sessionUID string) (game.Session, error) {
	ls, err := s.lookup(sessionUID)
	if err != nil {
		return game.Session{}, err
	}
	return ls.engine.Snapshot(), nil
}

// EndSession forces a session to its terminal state and removes it
// from the registry.
func (s *GameService) EndSession(sessionUID string) (game.Session, error) {
	ls, err := s.lookup(sessionUID)
	if err != nil {
		return game.Session{}, err
	}

	state := ls.engine.Dispatch(game.Finish{})
	ls.engine.Stop()

	s.mu.Lock()
	delete(s.sessions, sessionUID)
	s.mu.Unlock()

	return state, nil
}

// Results returns the persisted record and answers for a session,
// live or finished.
func (s *GameService) Results(sessionUID string) (*models.GameSession, []models.Answer, error) {
	if s.progressRepo == nil {
		return nil, nil, ErrSessionNotFound
	}

	record, err := s.progressRepo.GetSessionByUID(sessionUID)
	if err != nil {
		return nil, nil, ErrSessionNotFound
	}

	answers, err := s.progressRepo.GetSessionAnswers(record.ID)
	if err != nil {
		return nil, nil, err
	}

	return record, answers, nil
}

// LiveCount returns the number of sessions currently in the registry.
func (s *GameService) LiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *GameService) lookup(sessionUID string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[sessionUID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

// StartJanitor sweeps idle and finished sessions in the background.
func (s *GameService) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			s.sweep()
		}
	}()
}

func (s *GameService) sweep() {
	cutoff := time.Now().Add(-s.sessionTTL)

	s.mu.Lock()
	var stale []*liveSession
	var staleIDs []string
	for uid, ls := range s.sessions {
		finished := ls.engine.Snapshot().Status == game.StatusFinished
		if finished || ls.idleSince().Before(cutoff) {
			stale = append(stale, ls)
			staleIDs = append(staleIDs, uid)
		}
	}
	for _, uid := range staleIDs {
		delete(s.sessions, uid)
	}
	s.mu.Unlock()

	for i, ls := range stale {
		ls.engine.Stop()
		log.Debug().Str("session", staleIDs[i]).Msg("swept session")
	}
}

// progressRecorder bridges engine notifications to persistence and
// the report email. Engine callbacks arrive on their own goroutines,
// so everything here must be safe to run concurrently with dispatch.
type progressRecorder struct {
	svc        *GameService
	ls         *liveSession
	sessionUID string
	playerName string
	mode       string
	difficulty string
	logger     zerolog.Logger
}

func (s *GameService) newRecorder(sessionUID, playerName, mode, difficulty string, ls *liveSession) game.ProgressRecorder {
	return &progressRecorder{
		svc:        s,
		ls:         ls,
		sessionUID: sessionUID,
		playerName: playerName,
		mode:       mode,
		difficulty: difficulty,
		logger:     log.With().Str("session", sessionUID).Logger(),
	}
}

func (r *progressRecorder) RecordAnswer(questionID int64, isCorrect bool, selectedOption string) {
	if r.svc.progressRepo == nil || r.ls.recordID == 0 {
		return
	}
	if _, err := r.svc.progressRepo.RecordAnswer(r.ls.recordID, questionID, selectedOption, isCorrect); err != nil {
		r.logger.Error().Err(err).Int64("question", questionID).Msg("failed to record answer")
	}
}

func (r *progressRecorder) RecordSessionEnd(total, correct, wrong, finalScore int) {
	if r.svc.progressRepo != nil && r.ls.recordID != 0 {
		if err := r.svc.progressRepo.CompleteSession(r.ls.recordID, total, correct, wrong, finalScore); err != nil {
			r.logger.Error().Err(err).Msg("failed to complete session record")
		}
	}

	if r.svc.reports == nil || r.ls.reportEmail == "" {
		return
	}

	report := &models.SessionReport{
		SessionUID:     r.sessionUID,
		PlayerName:     r.playerName,
		Mode:           r.mode,
		Difficulty:     r.difficulty,
		TotalQuestions: total,
		CorrectCount:   correct,
		WrongCount:     wrong,
		FinalScore:     finalScore,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := r.svc.reports.SendSessionReport(ctx, r.ls.reportEmail, report); err != nil {
		r.logger.Error().Err(err).Msg("failed to send session report")
	}
}
