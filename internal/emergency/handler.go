package emergency

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
)

type AlertHandler struct {
	alertService AlertService
}

func NewAlertHandler(alertService AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

func (h *AlertHandler) GetActive(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	alert, err := h.alertService.Active(c, current.ID)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}
	if alert == nil {
		// Absence is normal control flow for the client; 404 is the
		// published contract for "no active emergency".
		helper.SendError(c, http.StatusNotFound, errors.New("no active emergency"), helper.ErrNotFound)
		return
	}

	helper.SendSuccess(c, http.StatusOK, alert)
}

func (h *AlertHandler) Trigger(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	alert, err := h.alertService.Trigger(c, current.ID, &req)
	if err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	helper.SendSuccess(c, http.StatusOK, alert)
}

func (h *AlertHandler) Resolve(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	alertID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		helper.SendError(c, http.StatusBadRequest, fmt.Errorf("invalid alert id: %w", err), helper.ErrInvalidRequest)
		return
	}

	alert, err := h.alertService.Resolve(c, current.ID, alertID)
	if err != nil {
		if errors.Is(err, ErrAlertNotFound) {
			helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
			return
		}
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, alert)
}
