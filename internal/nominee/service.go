package nominee

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNomineeNotFound = errors.New("nominee not found")

type CreateNomineeRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	DeviceToken  string `json:"device_token"`
}

type NomineeService interface {
	ListNominees(ctx context.Context, userID primitive.ObjectID) ([]*Nominee, error)
	CreateNominee(ctx context.Context, userID primitive.ObjectID, req *CreateNomineeRequest) (*Nominee, error)
	DeleteNominee(ctx context.Context, userID, nomineeID primitive.ObjectID) error
}

type nomineeService struct {
	nomineeRepository NomineeRepository
}

func NewNomineeService(repo NomineeRepository) NomineeService {
	return &nomineeService{
		nomineeRepository: repo,
	}
}

func (s *nomineeService) ListNominees(ctx context.Context, userID primitive.ObjectID) ([]*Nominee, error) {
	return s.nomineeRepository.FindAllByUser(ctx, userID)
}

func (s *nomineeService) CreateNominee(ctx context.Context, userID primitive.ObjectID, req *CreateNomineeRequest) (*Nominee, error) {

	nominee := &Nominee{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Name:         req.Name,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		DeviceToken:  req.DeviceToken,
	}

	if err := s.nomineeRepository.Create(ctx, nominee); err != nil {
		return nil, err
	}

	return nominee, nil
}

func (s *nomineeService) DeleteNominee(ctx context.Context, userID, nomineeID primitive.ObjectID) error {

	existing, err := s.nomineeRepository.FindByIDAndUser(ctx, nomineeID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNomineeNotFound
	}

	return s.nomineeRepository.Delete(ctx, nomineeID)
}
