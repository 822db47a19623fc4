package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"founderhub/internal/model"
	"founderhub/internal/repository"
	"founderhub/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrMissingFields      = errors.New("missing required fields: email, password, firstName, lastName, and role are required")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// IsValidationError reports whether err stems from malformed or missing input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrPasswordTooLong) ||
		errors.Is(err, ErrMissingUserInput)
}

// TokenIssuer issues opaque session tokens
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
}

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	validate   *validator.Validate
}

// NewAuthService creates a new AuthService. bcryptCost is the password hashing work factor.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: utils.NormalizeCost(bcryptCost),
		validate:   validator.New(),
	}
}

// Signup validates the request and stores a new account
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		Profile: model.Profile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		CreatedAt: time.Now().UTC(),
	}

	if req.Role == model.RoleFounder {
		user.Startup = &model.Startup{
			Name:         req.StartupName,
			Industry:     req.Industry,
			Stage:        orDefault(req.Stage, model.DefaultStartupStage),
			FundingStage: orDefault(req.FundingStage, model.DefaultFundingStage),
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost the race against a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	log.Printf("INFO: registered user %s with role %s", user.ID, user.Role)
	return user, nil
}

// Login authenticates a user and returns a session token
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Profile returns the stored account for an authenticated user
func (s *authService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// validateSignup reports missing fields before an invalid role
func (s *authService) validateSignup(req model.SignupRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate signup request: %w", err)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidRole
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
