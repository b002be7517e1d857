package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/scanlog/scanlog/pkg/export"
	"github.com/scanlog/scanlog/pkg/models"
	"github.com/scanlog/scanlog/pkg/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, models.MessageResponse{Message: "Barcode Scan API is running"})
}

func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScanRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, "Request body must be JSON like {\"barcode\": \"...\"}")
		return
	}
	if strings.TrimSpace(req.Barcode) == "" {
		s.writeError(w, r, http.StatusUnprocessableEntity, "Barcode must not be empty")
		return
	}

	scan, err := s.repo.Create(r.Context(), req.Barcode)
	if err != nil {
		s.log.Error(r.Context(), "create scan failed", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Failed to record scan")
		return
	}

	s.log.Info(r.Context(), "scan recorded", "id", scan.ID, "barcode", scan.Barcode)
	s.writeJSON(w, r, http.StatusCreated, scan)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, true)
	if err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	scans, err := s.repo.List(r.Context(), filter)
	if err != nil {
		s.respondStoreError(w, r, "list scans", err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, scans)
}

func (s *Server) handleExportScans(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, false)
	if err != nil {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	scans, err := s.repo.List(r.Context(), filter)
	if err != nil {
		s.respondStoreError(w, r, "export scans", err)
		return
	}
	if len(scans) == 0 {
		s.writeError(w, r, http.StatusNotFound, "No scans found for the given criteria.")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, scans, time.UTC); err != nil {
		s.log.Error(r.Context(), "export failed", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", models.ExportFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Warn(r.Context(), "export write failed", "error", err, "bytes", buf.Len())
	}
}

func (s *Server) handleDeleteScans(w http.ResponseWriter, r *http.Request) {
	n, err := s.repo.DeleteAll(r.Context())
	if err != nil {
		s.log.Error(r.Context(), "delete scans failed", "error", err)
		s.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to delete records: %v", err))
		return
	}

	s.log.Info(r.Context(), "scans deleted", "count", n)
	s.writeJSON(w, r, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Successfully deleted %d scan records.", n),
	})
}

func (s *Server) respondStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, store.ErrInvalidFilter) {
		s.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.log.Error(r.Context(), op+" failed", "error", err)
	s.writeError(w, r, http.StatusInternalServerError, "Failed to read scans")
}

// parseFilter reads start_date, end_date, barcode and, when paged, limit
// and skip. Zone-less dates are taken as UTC, matching stored times.
func parseFilter(r *http.Request, paged bool) (models.QueryFilter, error) {
	q := r.URL.Query()
	var (
		f   models.QueryFilter
		err error
	)

	if f.Start, err = models.ParseFilterTime(q.Get(models.ParamStartDate), time.UTC); err != nil {
		return f, fmt.Errorf("start_date: %w", err)
	}
	if f.End, err = models.ParseFilterTime(q.Get(models.ParamEndDate), time.UTC); err != nil {
		return f, fmt.Errorf("end_date: %w", err)
	}
	f.Barcode = q.Get(models.ParamBarcode)

	if !paged {
		return f, nil
	}

	f.Limit = models.DefaultPageSize
	if v := q.Get(models.ParamLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			return f, fmt.Errorf("limit must be an integer between 1 and %d", MaxLimit)
		}
		f.Limit = n
	}
	if v := q.Get(models.ParamSkip); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("skip must be a non-negative integer")
		}
		f.Offset = n
	}
	return f, nil
}

// writeJSON encodes v as the response body. Headers are already sent when
// encoding fails, so the failure can only be logged.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn(r.Context(), "response write failed", "error", err, "status", status)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	s.writeJSON(w, r, status, models.ErrorResponse{Detail: detail})
}
