package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dgallion1/stackadvisor/internal/advisor"
	"github.com/dgallion1/stackadvisor/internal/flowtree"
	"github.com/dgallion1/stackadvisor/internal/store"
)

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.tree.Root)
}

func (s *Server) handlePhases(w http.ResponseWriter, r *http.Request) {
	phases := []map[string]any{}
	for _, p := range s.tree.Phases() {
		phases = append(phases, map[string]any{
			"id":   p.ID,
			"text": p.Text,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(phases)
}

// optionView is the presentable shape of an option: text carries the
// user-facing phrase, label the dialect's internal branch label.
type optionView struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Label    string         `json:"label"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type questionView struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Options  []optionView   `json:"options"`
	Phase    int            `json:"phase"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	phase, err := strconv.Atoi(chi.URLParam(r, "phase"))
	if err != nil {
		jsonError(w, "phase must be an integer", http.StatusBadRequest)
		return
	}

	result := []questionView{}
	for _, q := range s.tree.QuestionsInPhase(phase) {
		qv := questionView{
			ID:       q.ID,
			Text:     q.Text,
			Options:  []optionView{},
			Phase:    phase,
			Metadata: q.Metadata,
		}
		for _, child := range q.Children {
			if child.Kind != flowtree.KindOption {
				continue
			}
			qv.Options = append(qv.Options, optionView{
				ID:       child.ID,
				Text:     flowtree.OptionLabel(child),
				Label:    child.Text,
				Metadata: child.Metadata,
			})
		}
		result = append(result, qv)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var answers []advisor.Answer
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	recs := s.engine.Evaluate(answers)
	s.stats.Record(time.Since(start))

	// Persist the session, but never let a store failure affect the
	// recommendations returned to the caller.
	session := store.Session{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Answers:   answers,
	}
	if err := s.store.SaveEvaluation(r.Context(), session, recs); err != nil {
		s.log.Warn("failed to persist evaluation", "session_id", session.ID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id":      session.ID,
		"recommendations": recs,
	})
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var session store.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Timestamp.IsZero() {
		session.Timestamp = time.Now().UTC()
	}

	if err := s.store.SaveSession(r.Context(), session); err != nil {
		jsonError(w, "failed to save session: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "success",
		"session_id": session.ID,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := s.store.GetSession(r.Context(), sessionID)
	if err != nil {
		jsonError(w, "failed to load session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if session == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	recs, err := s.store.GetRecommendations(r.Context(), sessionID)
	if err != nil {
		jsonError(w, "failed to load recommendations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session":         session,
		"recommendations": recs,
	})
}

func (s *Server) handleEvalStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"stats": s.stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
