package http

import (
	"encoding/json"
	"net/http"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/handler/http/response"
)

// AdminHandler groups the administrative operations: assignment
// overrides and ledger recalculation.
type AdminHandler interface {
	SetAssignment(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAdminHandler(attendanceService attendance.Service) AdminHandler {
	return &adminHandlerImpl{
		attendanceService: attendanceService,
	}
}

// SetAssignment implements AdminHandler.
func (h *adminHandlerImpl) SetAssignment(w http.ResponseWriter, r *http.Request) {
	var req shift.SetAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.attendanceService.SetAssignment(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment saved", nil)
}

// Recalculate implements AdminHandler.
func (h *adminHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	report, err := h.attendanceService.Recalculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
