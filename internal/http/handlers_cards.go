package http

import (
	"net/http"
)

type cardRequest struct {
	Name   string `json:"name"`
	DueDay int    `json:"dueDay"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.ledger.ListCards(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]cardJSON, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	req.Name = sanitizeInput(req.Name)

	card, err := s.ledger.CreateCard(r.Context(), req.Name, req.DueDay)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, toCardJSON(card))
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid card id")
		return
	}
	card, err := s.ledger.GetCard(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardJSON(card))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid card id")
		return
	}
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	req.Name = sanitizeInput(req.Name)

	card, err := s.ledger.UpdateCard(r.Context(), id, req.Name, req.DueDay)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, toCardJSON(card))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid card id")
		return
	}
	if err := s.ledger.DeleteCard(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}
