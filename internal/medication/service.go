package medication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrMedicationNotFound = errors.New("medication not found")

type MedicationService interface {
	ListMedications(ctx context.Context, userID primitive.ObjectID) ([]*Medication, error)
	CreateMedication(ctx context.Context, userID primitive.ObjectID, req *CreateMedicationRequest) (*Medication, error)
	RecordCompliance(ctx context.Context, userID, medicationID primitive.ObjectID, req *RecordComplianceRequest) (*MedicationLog, error)
	ListLogs(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]*MedicationLog, error)
}

type medicationService struct {
	medicationRepository MedicationRepository
	logRepository        LogRepository
}

func NewMedicationService(meds MedicationRepository, logs LogRepository) MedicationService {
	return &medicationService{
		medicationRepository: meds,
		logRepository:        logs,
	}
}

func (s *medicationService) ListMedications(ctx context.Context, userID primitive.ObjectID) ([]*Medication, error) {
	return s.medicationRepository.FindAllByUser(ctx, userID)
}

func (s *medicationService) CreateMedication(ctx context.Context, userID primitive.ObjectID, req *CreateMedicationRequest) (*Medication, error) {

	if err := validateDate(req.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	if req.EndDate != nil {
		if err := validateDate(*req.EndDate); err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		if *req.EndDate < req.StartDate {
			return nil, errors.New("end_date must not be before start_date")
		}
	}
	if _, err := time.Parse("15:04", req.ScheduledTime); err != nil {
		return nil, fmt.Errorf("invalid scheduled_time: %w", err)
	}

	med := &Medication{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Name:          req.Name,
		Dosage:        req.Dosage,
		ScheduledTime: req.ScheduledTime,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}

	if err := s.medicationRepository.Create(ctx, med); err != nil {
		return nil, err
	}

	return med, nil
}

// RecordCompliance upserts the log for (medication, date): a second record
// for the same day overwrites the first instead of stacking entries.
func (s *medicationService) RecordCompliance(ctx context.Context, userID, medicationID primitive.ObjectID, req *RecordComplianceRequest) (*MedicationLog, error) {

	if err := validateDate(req.Date); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	if req.Status != StatusTaken && req.Status != StatusMissed && req.Status != StatusPending {
		return nil, fmt.Errorf("invalid status %q", req.Status)
	}

	med, err := s.medicationRepository.FindByIDAndUser(ctx, medicationID, userID)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, ErrMedicationNotFound
	}

	existing, err := s.logRepository.FindByDate(ctx, medicationID, req.Date)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Status = req.Status
		existing.TakenAt = req.TakenAt
		if err := s.logRepository.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	log := &MedicationLog{
		ID:           primitive.NewObjectID(),
		MedicationID: medicationID,
		UserID:       userID,
		Date:         req.Date,
		Status:       req.Status,
		TakenAt:      req.TakenAt,
	}

	if err := s.logRepository.Create(ctx, log); err != nil {
		return nil, err
	}

	return log, nil
}

func (s *medicationService) ListLogs(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]*MedicationLog, error) {

	if err := validateDate(startDate); err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	if err := validateDate(endDate); err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	return s.logRepository.FindRangeByUser(ctx, userID, startDate, endDate)
}

func validateDate(date string) error {
	_, err := time.Parse("2006-01-02", date)
	return err
}
