package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
	"github.com/timekeep-hq/timekeep-backend-go/internal/handler/http/response"
)

type LedgerHandler interface {
	GetMyDailyLedger(w http.ResponseWriter, r *http.Request)
	GetMyMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.Service
}

func NewLedgerHandler(ledgerService ledger.Service) LedgerHandler {
	return &ledgerHandlerImpl{
		ledgerService: ledgerService,
	}
}

// GetMyDailyLedger implements LedgerHandler.
func (h *ledgerHandlerImpl) GetMyDailyLedger(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(w, r)
	if !ok {
		return
	}

	req := ledger.DailyLedgerRequest{
		EmployeeID: employeeID,
		WorkDate:   r.URL.Query().Get("date"),
	}

	resp, err := h.ledgerService.GetDailyLedger(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetMyMonthlySummary implements LedgerHandler.
func (h *ledgerHandlerImpl) GetMyMonthlySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromRequest(w, r)
	if !ok {
		return
	}

	req := ledger.MonthlySummaryRequest{
		EmployeeID: employeeID,
		Month:      r.URL.Query().Get("month"),
	}

	resp, err := h.ledgerService.GetMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func employeeIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return "", false
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.Unauthorized(w, "employee_id claim is missing")
		return "", false
	}
	return employeeID, true
}
