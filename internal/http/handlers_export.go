package http

import (
	"net/http"
	"time"

	"cartao/internal/core"
	"cartao/internal/export"
)

func (s *Server) exportRecords(w http.ResponseWriter, r *http.Request) ([]core.Record, bool) {
	filter, err := parseFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return nil, false
	}
	records, _, err := s.ledger.FilterRecords(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return records, true
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := s.exportRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("csv", time.Now())+`"`)
	_, _ = w.Write(export.CSV(records))
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	records, ok := s.exportRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.ms-excel; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("xls", time.Now())+`"`)
	_, _ = w.Write(export.Spreadsheet(records))
}

func (s *Server) handleExportPrint(w http.ResponseWriter, r *http.Request) {
	records, ok := s.exportRecords(w, r)
	if !ok {
		return
	}
	doc, err := export.PrintDocument(records, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(doc)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	records, ok := s.exportRecords(w, r)
	if !ok {
		return
	}
	doc, err := export.PDF(records, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("pdf", time.Now())+`"`)
	_, _ = w.Write(doc)
}
