package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (SessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (SessionResponse, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (SessionResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login rejected, password mismatch",
			zap.String("user_id", user.ID.String()),
		)
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.Active {
		return SessionResponse{}, autherrors.ErrAccountDisabled
	}

	session, err := s.issueSession(user)
	if err != nil {
		return SessionResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", user.EmployeeID.String()),
	)
	return session, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (SessionResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return SessionResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionResponse{}, autherrors.ErrInvalidRefreshToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return SessionResponse{}, autherrors.ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return SessionResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return SessionResponse{}, autherrors.ErrUserNotFound
	}
	if !user.Active {
		return SessionResponse{}, autherrors.ErrAccountDisabled
	}

	return s.issueSession(user)
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, autherrors.ErrUserNotFound
	}
	return mapToUserResponse(user), nil
}

// Register creates a login account for an existing employee. The directory
// row must exist first; onboarding owns that.
func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return UserResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employeeRepo.FindByID(ctx, employeeID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return UserResponse{}, err
	}

	taken, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return UserResponse{}, err
	}
	if taken {
		return UserResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.logger.Info("account registered",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", user.EmployeeID.String()),
	)
	return mapToUserResponse(user), nil
}

func (s *service) issueSession(user *User) (SessionResponse, error) {
	accessToken, err := generateToken(user, accessTokenTTL)
	if err != nil {
		return SessionResponse{}, autherrors.ErrTokenGeneration
	}
	refreshToken, err := generateToken(user, refreshTokenTTL)
	if err != nil {
		return SessionResponse{}, autherrors.ErrTokenGeneration
	}

	return SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapToUserResponse(user),
	}, nil
}

// generateToken signs the claim set the auth middleware expects.
func generateToken(user *User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": user.EmployeeID.String(),
		"role":        user.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
	}
}
