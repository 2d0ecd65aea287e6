package services

import (
	"lms_backend/internal/auth"
	"lms_backend/internal/email"
	"lms_backend/internal/logger"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type UserService interface {
	CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(id string) (*dto.UserResponse, error)
	ListUsers(role string) ([]*dto.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
	mailer   email.Sender
}

func NewUserService(userRepo repositories.UserRepository, mailer email.Sender) UserService {
	return &userService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

func (s *userService) CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, apperrors.New(apperrors.CodeAlreadyExists, "user", "Username is already taken", 409)
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		FullName:     req.FullName,
		Email:        req.Email,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Welcome mail is best-effort, account creation already succeeded.
	if err := s.mailer.SendWelcome(user.Email, user.FullName, user.Username); err != nil {
		logger.Warn("failed to send welcome mail", "user_id", user.ID, "error", err)
	}

	return userResponse(user), nil
}

func (s *userService) GetUser(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return userResponse(user), nil
}

func (s *userService) ListUsers(role string) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.List(models.UserRole(role))
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, userResponse(&users[i]))
	}
	return responses, nil
}
