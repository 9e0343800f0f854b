package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req *UpdateProfileRequest) (*User, error)
}

type userService struct {
	userRepository UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &userService{
		userRepository: repo,
	}
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *UpdateProfileRequest) (*User, error) {

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DOB != "" {
		if _, err := time.Parse("2006-01-02", req.DOB); err != nil {
			return nil, errors.New("dob must be formatted as YYYY-MM-DD")
		}
		user.DOB = req.DOB
	}

	if req.Fullname != "" {
		user.Fullname = req.Fullname
	}
	if req.BloodGroup != "" {
		user.BloodGroup = req.BloodGroup
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	// Phone is the login identity and is never updated here.

	if err := s.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
