package http

import (
	"errors"
	"net/http"

	"cartao/internal/core"
	"cartao/internal/ledger"
	applog "cartao/internal/log"
)

type purchaseRequest struct {
	CardID         int64  `json:"cardId"`
	Date           string `json:"date"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
	Total          string `json:"total"`
	Installments   int    `json:"installments"`
	Person         string `json:"person"`
}

func (s *Server) handleLaunchPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Total)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid total amount"})
		return
	}

	purchase := core.Purchase{
		CardID:         req.CardID,
		Date:           req.Date,
		Description:    sanitizeInput(req.Description),
		Classification: sanitizeInput(req.Classification),
		Total:          core.Money{Cents: cents},
		Installments:   req.Installments,
		Person:         sanitizeInput(req.Person),
	}

	parentID, err := s.ledger.LaunchPurchase(r.Context(), purchase)
	if err != nil {
		var partial *ledger.PartialLaunchError
		if errors.As(err, &partial) {
			// Some installments are already in the ledger; surface that
			// instead of pretending nothing happened.
			structured := applog.NewStructuredLogger(applog.FromContext(r.Context()))
			structured.LogError(r.Context(), "Purchase partially launched", partial.Err,
				applog.ComponentLedger, applog.OpLaunch,
				applog.NewFields().WithPurchase(partial.ParentID, partial.Total, purchase.Person))
			s.invalidateDashboard()
			writeJSON(w, http.StatusInternalServerError, struct {
				Error     string `json:"error"`
				ParentID  int64  `json:"parentId"`
				Persisted int    `json:"persisted"`
				Total     int    `json:"total"`
			}{
				Error:     "purchase partially launched",
				ParentID:  partial.ParentID,
				Persisted: partial.Persisted,
				Total:     partial.Total,
			})
			return
		}
		writeError(w, r, err)
		return
	}

	structured := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	structured.LogPurchaseLaunched(r.Context(), parentID, purchase.Installments, purchase.Person)

	s.invalidateDashboard()
	writeJSON(w, http.StatusCreated, struct {
		ParentID int64 `json:"parentId"`
	}{ParentID: parentID})
}

func (s *Server) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	parentID, err := pathID(r, "parentId")
	if err != nil {
		badRequest(w, "invalid purchase group id")
		return
	}
	count, err := s.ledger.DeletePurchase(r.Context(), parentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, struct {
		Deleted int `json:"deleted"`
	}{Deleted: count})
}
