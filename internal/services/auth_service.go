package services

import (
	"lms_backend/internal/auth"
	"lms_backend/internal/models"
	"lms_backend/internal/repositories"
	"lms_backend/internal/services/dto"
	"lms_backend/pkg/apperrors"
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	userRepo        repositories.UserRepository
	activityService ActivityService
}

func NewAuthService(userRepo repositories.UserRepository, activityService ActivityService) AuthService {
	return &authService{
		userRepo:        userRepo,
		activityService: activityService,
	}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid username or password", 401)
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid username or password", 401)
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activityService.Record(user.ID, "login", "")

	return &dto.LoginResponse{
		AccessToken: token,
		UserID:      user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
	}, nil
}

// userResponse maps a user model to its API shape.
func userResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		FullName: user.FullName,
		Email:    user.Email,
	}
}
