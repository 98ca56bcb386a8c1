/*
handlers.go - HTTP API handlers for the payroll estimation service

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates all computation to the engine. The
  handlers add two collaborator concerns on top of the pure core:
  opt-in history persistence and fire-and-forget narrative advice.

ENDPOINTS:
  Calculations:
    POST   /api/calculations/hourly     Mode A: weekly schedule + wage
    POST   /api/calculations/salary     Mode B: annual salary
    POST   /api/calculations/timesheet  Mode C: punch-clock log

  Reference data:
    GET    /api/jurisdictions           List province/territory rules
    GET    /api/jurisdictions/{code}    One jurisdiction
    GET    /api/frequencies             Periods-per-year contract table

  Per-user storage:
    GET    /api/users/{id}/calculations          Saved history
    GET    /api/users/{id}/timesheet             Stored entries
    POST   /api/users/{id}/timesheet             Store entries
    DELETE /api/users/{id}/timesheet/{entryID}   Remove one entry

ERROR HANDLING:
  Engine validation errors map to 400 with a machine-readable code;
  unknown lookup paths map to 404; everything else is 500. The engine
  sentinel taxonomy drives the mapping (engine.IsClientError).

SEE ALSO:
  - dto.go: Request/response data structures
  - advisor.go: Narrative advice dispatch
  - server.go: Router setup and middleware
*/
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Rules   *engine.RuleSet
	Advisor *AdvisorClient
}

// NewHandler creates a handler over a store and a validated rule set.
func NewHandler(store *sqlite.Store, rules *engine.RuleSet) *Handler {
	return &Handler{Store: store, Rules: rules}
}

// =============================================================================
// CALCULATION ENDPOINTS
// =============================================================================

// CalculateHourly runs the hourly-schedule mode.
// POST /api/calculations/hourly
func (h *Handler) CalculateHourly(w http.ResponseWriter, r *http.Request) {
	var req HourlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wage, err := decFromFloat("hourly_wage", req.HourlyWage, engine.ErrInvalidWage)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	input := engine.HourlyInput{
		Jurisdiction: req.Province,
		HourlyWage:   wage,
		Schedule: engine.WeeklySchedule{
			StartTime:          req.StartTime,
			EndTime:            req.EndTime,
			UnpaidBreakMinutes: req.UnpaidBreakMinutes,
			DaysActive:         req.DaysActive,
		},
		IncludeVacationPay: req.IncludeVacationPay,
	}
	if req.Premium != nil {
		rate, err := decFromFloat("premium_rate", req.Premium.RatePerHour, engine.ErrInvalidWage)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		input.Premium = engine.PremiumWindow{
			Enabled:     true,
			RatePerHour: rate,
			StartTime:   req.Premium.StartTime,
			EndTime:     req.Premium.EndTime,
		}
	}

	res, err := engine.CalculateHourly(input, h.Rules)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := toResultDTO(res)
	h.finish(r, "hourly", req.UserID, req.WithAdvice, req, dto, req.Province)
	writeJSON(w, http.StatusOK, dto)
}

// CalculateSalary runs the annual-salary mode.
// POST /api/calculations/salary
func (h *Handler) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	var req SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	salary, err := decFromFloat("annual_salary", req.AnnualSalary, engine.ErrInvalidSalary)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	res, err := engine.CalculateSalary(engine.SalaryInput{
		Jurisdiction: req.Province,
		AnnualSalary: salary,
		Frequency:    engine.PayFrequency(req.PayFrequency),
	}, h.Rules)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := toResultDTO(res)
	h.finish(r, "salary", req.UserID, req.WithAdvice, req, dto, req.Province)
	writeJSON(w, http.StatusOK, dto)
}

// CalculateTimesheet runs the timesheet-log mode.
// POST /api/calculations/timesheet
func (h *Handler) CalculateTimesheet(w http.ResponseWriter, r *http.Request) {
	var req TimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wage, err := decFromFloat("hourly_wage", req.HourlyWage, engine.ErrInvalidWage)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	entries := make([]engine.TimesheetEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = engine.TimesheetEntry{
			Date:               e.Date,
			CheckIn:            e.CheckIn,
			CheckOut:           e.CheckOut,
			UnpaidBreakMinutes: e.UnpaidBreakMinutes,
			Notes:              e.Notes,
		}
	}

	res, err := engine.CalculateTimesheet(engine.TimesheetInput{
		Jurisdiction: req.Province,
		HourlyWage:   wage,
		Frequency:    engine.PayFrequency(req.PayFrequency),
		Entries:      entries,
	}, h.Rules)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := toResultDTO(res)
	h.finish(r, "timesheet", req.UserID, req.WithAdvice, req, dto, req.Province)
	writeJSON(w, http.StatusOK, dto)
}

// finish handles the two post-calculation collaborators: history
// persistence and advice dispatch. Neither may fail the calculation
// response; problems are logged and dropped.
func (h *Handler) finish(r *http.Request, mode, userID string, withAdvice bool, req, dto any, province string) {
	if userID != "" && h.Store != nil {
		inputs, _ := json.Marshal(req)
		results, _ := json.Marshal(dto)
		rec := sqlite.CalculationRecord{
			ID:          uuid.NewString(),
			UserID:      userID,
			Mode:        mode,
			InputsJSON:  string(inputs),
			ResultsJSON: string(results),
			CreatedAt:   time.Now(),
		}
		if err := h.Store.SaveCalculation(r.Context(), rec); err != nil {
			log.WithError(err).WithField("mode", mode).Warn("failed to save calculation history")
		}
	}

	if withAdvice && h.Advisor != nil {
		if result, ok := dto.(ResultDTO); ok {
			name := province
			if j, err := h.Rules.Resolve(province); err == nil {
				name = j.Name
			}
			h.Advisor.Dispatch(result, name)
		}
	}
}

// =============================================================================
// REFERENCE DATA ENDPOINTS
// =============================================================================

// ListJurisdictions returns all jurisdiction rules, sorted by code.
// GET /api/jurisdictions
func (h *Handler) ListJurisdictions(w http.ResponseWriter, r *http.Request) {
	codes := h.Rules.Codes()
	dtos := make([]JurisdictionDTO, 0, len(codes))
	for _, code := range codes {
		j, err := h.Rules.Resolve(code)
		if err != nil {
			continue
		}
		dtos = append(dtos, toJurisdictionDTO(j))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetJurisdiction returns one jurisdiction's rules.
// GET /api/jurisdictions/{code}
func (h *Handler) GetJurisdiction(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	j, err := h.Rules.Resolve(code)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown jurisdiction", err)
		return
	}
	writeJSON(w, http.StatusOK, toJurisdictionDTO(j))
}

// ListFrequencies returns the periods-per-year contract table.
// GET /api/frequencies
func (h *Handler) ListFrequencies(w http.ResponseWriter, r *http.Request) {
	freqs := engine.Frequencies()
	dtos := make([]FrequencyDTO, 0, len(freqs))
	for _, f := range freqs {
		periods, _ := f.PeriodsPerYear()
		dtos = append(dtos, FrequencyDTO{Frequency: string(f), PeriodsPerYear: periods})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PER-USER STORAGE ENDPOINTS
// =============================================================================

// ListCalculations returns a user's saved calculation history.
// GET /api/users/{id}/calculations?limit=N
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.Store.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calculations", err)
		return
	}

	dtos := make([]CalculationRecordDTO, 0, len(records))
	for _, rec := range records {
		var inputs, results any
		_ = json.Unmarshal([]byte(rec.InputsJSON), &inputs)
		_ = json.Unmarshal([]byte(rec.ResultsJSON), &results)
		dtos = append(dtos, CalculationRecordDTO{
			ID:        rec.ID,
			Mode:      rec.Mode,
			Inputs:    inputs,
			Results:   results,
			CreatedAt: formatCreatedAt(rec.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListTimesheet returns a user's stored punch-clock entries.
// GET /api/users/{id}/timesheet
func (h *Handler) ListTimesheet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	records, err := h.Store.ListTimesheetEntries(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list timesheet entries", err)
		return
	}

	dtos := make([]TimesheetEntryDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toTimesheetEntryDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveTimesheet stores a batch of punch-clock entries for a user. Entries
// are validated the same way the timesheet calculation validates them, so
// the store never holds rows a later calculation would reject.
// POST /api/users/{id}/timesheet
func (h *Handler) SaveTimesheet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var entries []TimesheetEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	saved := make([]TimesheetEntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			writeEngineError(w, err)
			return
		}
		rec := sqlite.TimesheetRecord{
			ID:                 uuid.NewString(),
			UserID:             userID,
			Date:               e.Date,
			CheckIn:            e.CheckIn,
			CheckOut:           e.CheckOut,
			UnpaidBreakMinutes: e.UnpaidBreakMinutes,
			Notes:              e.Notes,
			CreatedAt:          time.Now(),
		}
		if err := h.Store.SaveTimesheetEntry(r.Context(), rec); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save timesheet entry", err)
			return
		}
		saved = append(saved, toTimesheetEntryDTO(rec))
	}
	writeJSON(w, http.StatusCreated, saved)
}

// DeleteTimesheetEntry removes one stored entry.
// DELETE /api/users/{id}/timesheet/{entryID}
func (h *Handler) DeleteTimesheetEntry(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")

	err := h.Store.DeleteTimesheetEntry(r.Context(), userID, entryID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Timesheet entry not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete timesheet entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateEntry(e TimesheetEntryDTO) error {
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return &engine.DateError{Input: e.Date}
	}
	if _, err := engine.ParseClock(e.CheckIn); err != nil {
		return err
	}
	if _, err := engine.ParseClock(e.CheckOut); err != nil {
		return err
	}
	if e.UnpaidBreakMinutes < 0 {
		return engine.ErrInvalidBreak
	}
	return nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine validation errors to 400 with a stable code.
func writeEngineError(w http.ResponseWriter, err error) {
	if !engine.IsClientError(err) {
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
		return
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   err.Error(),
		Code:    errorCode(err),
		Details: nil,
	})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidTimeFormat):
		return "invalid_time_format"
	case errors.Is(err, engine.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, engine.ErrWindowOutOfRange):
		return "window_out_of_range"
	case errors.Is(err, engine.ErrInvalidWage):
		return "invalid_wage"
	case errors.Is(err, engine.ErrInvalidSalary):
		return "invalid_salary"
	case errors.Is(err, engine.ErrInvalidBreak):
		return "invalid_break"
	case errors.Is(err, engine.ErrUnknownJurisdiction):
		return "unknown_jurisdiction"
	case errors.Is(err, engine.ErrUnknownPayFrequency):
		return "unknown_pay_frequency"
	default:
		return "invalid_input"
	}
}
