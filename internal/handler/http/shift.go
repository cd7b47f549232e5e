package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByPosition(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListByPosition implements ShiftHandler.
func (h *shiftHandlerImpl) ListByPosition(w http.ResponseWriter, r *http.Request) {
	position := chi.URLParam(r, "position")
	if position == "" {
		response.BadRequest(w, "Position is required", nil)
		return
	}

	resp, err := h.shiftService.ListShiftsByPosition(r.Context(), position)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
