package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/notification"
	"github.com/timekeep-hq/timekeep-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notificationService: notificationService,
	}
}

// ListMine implements NotificationHandler.
func (h *notificationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	employeeID, _ := claims["employee_id"].(string)
	companyID, _ := claims["company_id"].(string)
	if employeeID == "" || companyID == "" {
		response.Unauthorized(w, "employee_id or company_id claim is missing")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.notificationService.GetNotifications(r.Context(), employeeID, companyID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notifications)
}
