package medication

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surya-tn99/lumi-your-voice-for-care/helper"
	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
)

type MedicationHandler struct {
	medicationService MedicationService
}

func NewMedicationHandler(medicationService MedicationService) *MedicationHandler {
	return &MedicationHandler{
		medicationService: medicationService,
	}
}

func (h *MedicationHandler) ListMedications(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	meds, err := h.medicationService.ListMedications(c, current.ID)
	if err != nil {
		helper.SendError(c, http.StatusInternalServerError, err, helper.ErrInvalidOperation)
		return
	}
	if meds == nil {
		meds = []*Medication{}
	}

	helper.SendSuccess(c, http.StatusOK, meds)
}

func (h *MedicationHandler) CreateMedication(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	med, err := h.medicationService.CreateMedication(c, current.ID, &req)
	if err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, med)
}

func (h *MedicationHandler) RecordCompliance(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	medicationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		helper.SendError(c, http.StatusBadRequest, fmt.Errorf("invalid medication id: %w", err), helper.ErrInvalidRequest)
		return
	}

	var req RecordComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	log, err := h.medicationService.RecordCompliance(c, current.ID, medicationID, &req)
	if err != nil {
		if errors.Is(err, ErrMedicationNotFound) {
			helper.SendError(c, http.StatusNotFound, err, helper.ErrNotFound)
			return
		}
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}

	helper.SendSuccess(c, http.StatusOK, log)
}

func (h *MedicationHandler) ListLogs(c *gin.Context) {

	current := user.CurrentUser(c)
	if current == nil {
		helper.SendError(c, http.StatusUnauthorized, nil, helper.ErrUnauthorized)
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		helper.SendError(c, http.StatusBadRequest, fmt.Errorf("start_date and end_date are required"), helper.ErrInvalidRequest)
		return
	}

	logs, err := h.medicationService.ListLogs(c, current.ID, startDate, endDate)
	if err != nil {
		helper.SendError(c, http.StatusBadRequest, err, helper.ErrInvalidRequest)
		return
	}
	if logs == nil {
		logs = []*MedicationLog{}
	}

	helper.SendSuccess(c, http.StatusOK, logs)
}
