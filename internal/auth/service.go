package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/surya-tn99/lumi-your-voice-for-care/internal/user"
)

var (
	ErrInvalidOTP        = errors.New("invalid OTP")
	ErrUserNotFound      = errors.New("user not found, please register")
	ErrAlreadyRegistered = errors.New("phone number already registered")
)

type AuthService interface {
	CheckUser(ctx context.Context, phone string) (bool, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error)
	VerifyToken(tokenString string) (string, error)
}

type authService struct {
	userRepository user.UserRepository
	jwtSecret      []byte
	tokenExpiry    time.Duration
	universalOTP   string
}

func NewAuthService(repo user.UserRepository, jwtSecret string, tokenExpiry time.Duration, universalOTP string) AuthService {
	return &authService{
		userRepository: repo,
		jwtSecret:      []byte(jwtSecret),
		tokenExpiry:    tokenExpiry,
		universalOTP:   universalOTP,
	}
}

func (s *authService) CheckUser(ctx context.Context, phone string) (bool, error) {

	existing, err := s.userRepository.FindByPhone(ctx, phone)
	if err != nil {
		return false, err
	}

	return existing != nil, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {

	// OTP delivery is out of scope; a universal demo code stands in for a
	// real SMS verification flow.
	if req.OTP != s.universalOTP {
		return nil, ErrInvalidOTP
	}

	existing, err := s.userRepository.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	token, err := s.issueToken(existing.Phone)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  token,
		TokenType:    "bearer",
		IsRegistered: true,
	}, nil
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {

	if _, err := time.Parse("2006-01-02", req.DOB); err != nil {
		return nil, fmt.Errorf("invalid dob: %w", err)
	}

	existing, err := s.userRepository.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	newUser := &user.User{
		ID:         primitive.NewObjectID(),
		Fullname:   req.Fullname,
		Phone:      req.Phone,
		DOB:        req.DOB,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
		CreatedAt:  time.Now(),
	}

	if err := s.userRepository.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.issueToken(newUser.Phone)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  token,
		TokenType:    "bearer",
		IsRegistered: true,
	}, nil
}

func (s *authService) issueToken(phone string) (string, error) {

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   phone,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates a bearer token and returns the phone number it was
// issued for.
func (s *authService) VerifyToken(tokenString string) (string, error) {

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token missing subject")
	}

	return claims.Subject, nil
}
