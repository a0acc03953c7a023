package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wordrush/internal/game"
	"wordrush/internal/service"
)

// SessionHandler handles the game session HTTP API
type SessionHandler struct {
	games *service.GameService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(games *service.GameService) *SessionHandler {
	return &SessionHandler{games: games}
}

type startRequest struct {
	PlayerName  string `json:"playerName"`
	Mode        string `json:"mode"`
	Difficulty  string `json:"difficulty"`
	ReportEmail string `json:"reportEmail"`
}

type startResponse struct {
	SessionUID string      `json:"sessionUid"`
	Token      string      `json:"token"`
	State      SessionView `json:"state"`
}

// Start creates a new game session
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.games.StartSession(service.StartParams{
		PlayerName:  req.PlayerName,
		Mode:        req.Mode,
		Difficulty:  req.Difficulty,
		ReportEmail: req.ReportEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameNotAllowed):
			respondWithError(w, http.StatusUnprocessableEntity, "player name not allowed", nil)
		case errors.Is(err, service.ErrEmptyWordPool):
			respondWithError(w, http.StatusConflict, "no words available", nil)
		default:
			respondWithError(w, http.StatusBadRequest, "failed to start session", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, startResponse{
		SessionUID: result.SessionUID,
		Token:      result.Token,
		State:      NewSessionView(result.State),
	})
}

// State returns the current session snapshot
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.games.Snapshot(SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "session not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, NewSessionView(state))
}

type answerRequest struct {
	Direction string `json:"direction"`
}

// Answer submits an answer by direction name (arrow-key path)
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	dir, ok := game.ParseDirection(req.Direction)
	if !ok {
		// Raw key names from the client work too
		if dir, ok = game.KeyDirection(req.Direction); !ok {
			respondWithError(w, http.StatusBadRequest, "unknown direction", nil)
			return
		}
	}

	h.dispatch(w, r, game.SubmitAnswer{Direction: dir})
}

type gestureRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Gesture submits an answer as a raw swipe delta. Deltas below the
// recognition threshold are acknowledged but select nothing.
func (h *SessionHandler) Gesture(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	dir, ok := game.Resolve(req.DX, req.DY)
	if !ok {
		state, err := h.games.Snapshot(SessionFromContext(r.Context()))
		if err != nil {
			respondWithError(w, http.StatusNotFound, "session not found", nil)
			return
		}
		respondJSON(w, http.StatusOK, NewSessionView(state))
		return
	}

	h.dispatch(w, r, game.SubmitAnswer{Direction: dir})
}

// Next advances past the feedback screen
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, game.Next{})
}

// Pause freezes the session clock
func (h *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, game.Pause{})
}

// Resume unfreezes the session clock
func (h *SessionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, game.Resume{})
}

type selectPairRequest struct {
	Side  string `json:"side"`
	Index int    `json:"index"`
}

// SelectPair registers a connect-board tile selection
func (h *SessionHandler) SelectPair(w http.ResponseWriter, r *http.Request) {
	var req selectPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var side game.PairSide
	switch req.Side {
	case "left":
		side = game.SideLeft
	case "right":
		side = game.SideRight
	default:
		respondWithError(w, http.StatusBadRequest, "unknown board side", nil)
		return
	}

	h.dispatch(w, r, game.SelectPair{Side: side, Index: req.Index})
}

// Exit forces the session to its terminal state
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	state, err := h.games.EndSession(SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "session not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, NewSessionView(state))
}

// Results returns the persisted outcome of a session
func (h *SessionHandler) Results(w http.ResponseWriter, r *http.Request) {
	record, answers, err := h.games.Results(SessionFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "results not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, NewResultsView(record, answers))
}

func (h *SessionHandler) dispatch(w http.ResponseWriter, r *http.Request, ev game.Event) {
	state, err := h.games.Dispatch(SessionFromContext(r.Context()), ev)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "session not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, NewSessionView(state))
}
