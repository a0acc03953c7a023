package service

import (
	"errors"
	"testing"
	"time"

	"wordrush/internal/game"
)

type fakeScreener struct {
	blocked map[string]bool
}

func (f *fakeScreener) ScreenName(name string) ([]string, error) {
	if f.blocked[name] {
		return []string{name}, nil
	}
	return nil, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(sessionUID, playerName string) (string, error) {
	return "token-" + sessionUID, nil
}

func newTestService() *GameService {
	return NewGameService(GameServiceConfig{
		Content:     NewContentService(nil),
		Screener:    &fakeScreener{blocked: map[string]bool{"badname": true}},
		Tokens:      fakeTokens{},
		LanguageTag: "es",
		SpeechRate:  0.8,
		SessionTTL:  time.Minute,
	})
}

func TestStartSession(t *testing.T) {
	svc := newTestService()

	result, err := svc.StartSession(StartParams{PlayerName: "Ana", Mode: "normal"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	if result.SessionUID == "" {
		t.Error("SessionUID should not be empty")
	}
	if result.Token != "token-"+result.SessionUID {
		t.Errorf("Token = %v, want issued token", result.Token)
	}
	if result.State.Status != game.StatusPlaying {
		t.Errorf("Status = %v, want playing", result.State.Status)
	}
	if len(result.State.Words) == 0 {
		t.Error("session should have a word set loaded")
	}
	if svc.LiveCount() != 1 {
		t.Errorf("LiveCount() = %d, want 1", svc.LiveCount())
	}
}

func TestStartSessionScreensName(t *testing.T) {
	svc := newTestService()

	_, err := svc.StartSession(StartParams{PlayerName: "badname", Mode: "normal"})
	if !errors.Is(err, ErrNameNotAllowed) {
		t.Errorf("StartSession() error = %v, want ErrNameNotAllowed", err)
	}
}

func TestStartSessionRejectsUnknownMode(t *testing.T) {
	svc := newTestService()

	if _, err := svc.StartSession(StartParams{PlayerName: "Ana", Mode: "bogus"}); err == nil {
		t.Error("StartSession() with unknown mode should fail")
	}
}

func TestDispatchUnknownSession(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Dispatch("missing", game.Next{}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Dispatch() error = %v, want ErrSessionNotFound", err)
	}
}

func TestDispatchRoutesToEngine(t *testing.T) {
	svc := newTestService()

	result, err := svc.StartSession(StartParams{PlayerName: "Ana", Mode: "normal"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	state, err := svc.Dispatch(result.SessionUID, game.Pause{})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !state.IsPaused {
		t.Error("session should be paused after Pause event")
	}
}

func TestEndSession(t *testing.T) {
	svc := newTestService()

	result, err := svc.StartSession(StartParams{PlayerName: "Ana", Mode: "speed"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	state, err := svc.EndSession(result.SessionUID)
	if err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if state.Status != game.StatusFinished {
		t.Errorf("Status = %v, want finished", state.Status)
	}
	if svc.LiveCount() != 0 {
		t.Errorf("LiveCount() = %d, want 0 after end", svc.LiveCount())
	}

	if _, err := svc.Snapshot(result.SessionUID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Snapshot() after end error = %v, want ErrSessionNotFound", err)
	}
}

func TestSweepRemovesFinishedSessions(t *testing.T) {
	svc := newTestService()

	result, err := svc.StartSession(StartParams{PlayerName: "Ana", Mode: "normal"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	if _, err := svc.Dispatch(result.SessionUID, game.Finish{}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	svc.sweep()

	if svc.LiveCount() != 0 {
		t.Errorf("LiveCount() = %d, want 0 after sweep", svc.LiveCount())
	}
}

func TestSweepKeepsActiveSessions(t *testing.T) {
	svc := newTestService()

	if _, err := svc.StartSession(StartParams{PlayerName: "Ana", Mode: "normal"}); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	svc.sweep()

	if svc.LiveCount() != 1 {
		t.Errorf("LiveCount() = %d, want 1 for active session", svc.LiveCount())
	}
}

func TestContentFallback(t *testing.T) {
	content := NewContentService(nil)

	words, err := content.WordsForDifficulty("beginner")
	if err != nil {
		t.Fatalf("WordsForDifficulty() error = %v", err)
	}
	if len(words) == 0 {
		t.Fatal("starter set should not be empty")
	}

	// Starter set must cover at least one full connect board
	if len(words) < 10 {
		t.Errorf("starter set has %d words, want at least 10", len(words))
	}

	seen := make(map[string]bool)
	for _, w := range words {
		if seen[w.Translation] {
			t.Errorf("duplicate translation %q in starter set", w.Translation)
		}
		seen[w.Translation] = true
	}
}
