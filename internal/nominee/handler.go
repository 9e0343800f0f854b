package nominee

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
)

type NomineeHandler struct {
	nomineeService NomineeService
}

func NewNomineeHandler(nomineeService NomineeService) *NomineeHandler {
	return &NomineeHandler{
		nomineeService: nomineeService,
	}
}

func (h *NomineeHandler) ListNominees(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	nominees, err := h.nomineeService.ListNominees(c, current.ID)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}
	if nominees == nil {
		nominees = []*Nominee{}
	}

	helper.SendSuccess(c, http.StatusOK, nominees)
}

func (h *NomineeHandler) CreateNominee(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	var req CreateNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	nominee, err := h.nomineeService.CreateNominee(c, current.ID, &req)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, nominee)
}

func (h *NomineeHandler) DeleteNominee(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	nomineeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		helper.SendError(c, http.StatusBadRequest, fmt.Errorf("invalid nominee id: %w", err), helper.ErrInvalidRequest)
		return
	}

	if err := h.nomineeService.DeleteNominee(c, current.ID, nomineeID); err != nil {
		if errors.Is(err, ErrNomineeNotFound) {
			helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
			return
		}
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{"message": "nominee deleted"})
}
