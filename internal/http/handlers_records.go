package http

import (
	"net/http"

	"cartao/internal/core"
	"cartao/internal/ledger"
)

type recordListResponse struct {
	Records []recordJSON `json:"records"`
	Total   string       `json:"total"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	records, total, err := s.ledger.FilterRecords(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordListResponse{
		Records: toRecordListJSON(records),
		Total:   total.Decimal(),
	})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid record id")
		return
	}
	record, err := s.ledger.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordJSON(record))
}

type recordPatchRequest struct {
	PurchaseDate   *string `json:"purchaseDate"`
	Description    *string `json:"description"`
	Classification *string `json:"classification"`
	Amount         *string `json:"amount"`
	Person         *string `json:"person"`
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid record id")
		return
	}
	var req recordPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	patch := ledger.RecordUpdate{
		PurchaseDate: req.PurchaseDate,
	}
	if req.Description != nil {
		desc := sanitizeInput(*req.Description)
		patch.Description = &desc
	}
	if req.Classification != nil {
		class := sanitizeInput(*req.Classification)
		patch.Classification = &class
	}
	if req.Person != nil {
		person := sanitizeInput(*req.Person)
		patch.Person = &person
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(*req.Amount)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid amount"})
			return
		}
		patch.Amount = &core.Money{Cents: cents}
	}

	record, err := s.ledger.UpdateRecord(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, toRecordJSON(record))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, "invalid record id")
		return
	}
	if err := s.ledger.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (s *Server) handleBulkDeleteRecords(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if len(req.IDs) == 0 {
		badRequest(w, "ids must not be empty")
		return
	}
	count, err := s.ledger.DeleteRecords(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, struct {
		Deleted int `json:"deleted"`
	}{Deleted: count})
}
