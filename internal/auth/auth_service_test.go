package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"go-workforce/internal/auth"
	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/domain"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/ledger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn      func(ctx context.Context, user *auth.User) error
	getByEmailFn  func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	emailExistsFn func(ctx context.Context, email string) (bool, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.emailExistsFn != nil {
		return f.emailExistsFn(ctx, email)
	}
	return false, nil
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeEmployeeRepository) FindDefaultAllocations(ctx context.Context) ([]ledger.Allocation, error) {
	return nil, nil
}

func newUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:           uuid.New(),
		EmployeeID:   uuid.New(),
		Email:        "dana.flores@example.com",
		PasswordHash: string(hash),
		Active:       true,
		FullName:     "Dana Flores",
		Role:         domain.RoleManager,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues tokens carrying the identity claims", func(t *testing.T) {
		user := newUser(t, "correct horse")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		session, err := svc.Login(ctx, user.Email, "correct horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, user.Email, session.User.Email)
		assert.Equal(t, domain.RoleManager, session.User.Role)

		token, err := jwt.Parse(session.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims, ok := token.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, user.EmployeeID.String(), claims["employee_id"])
		assert.Equal(t, domain.RoleManager, claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		user := newUser(t, "correct horse")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		_, err := svc.Login(ctx, user.Email, "battery staple")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email gets the same answer", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeRepository{})

		_, err := svc.Login(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative disabled account", func(t *testing.T) {
		user := newUser(t, "correct horse")
		user.Active = false
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}
		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		_, err := svc.Login(ctx, user.Email, "correct horse")

		assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid refresh token issues a new session", func(t *testing.T) {
		user := newUser(t, "correct horse")
		repo := &fakeAuthRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, user.ID, id)
				return user, nil
			},
		}
		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		session, err := svc.Login(ctx, user.Email, "correct horse")
		assert.NoError(t, err)

		renewed, err := svc.Refresh(ctx, session.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, renewed.AccessToken)
		assert.Equal(t, user.ID.String(), renewed.User.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeRepository{})

		_, err := svc.Refresh(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	employeeID := uuid.New()
	employeeRepo := &fakeEmployeeRepository{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, FullName: "Dana Flores", Role: domain.RoleEmployee}, nil
		},
	}

	t.Run("success stores a bcrypt hash, never the password", func(t *testing.T) {
		var saved *auth.User
		repo := &fakeAuthRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				saved = user
				return nil
			},
		}
		svc := auth.NewService(repo, employeeRepo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Email:      "dana.flores@example.com",
			Password:   "correct horse",
		})

		assert.NoError(t, err)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.NotNil(t, saved)
		assert.NotEqual(t, "correct horse", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("correct horse")))
	})

	t.Run("negative email already registered", func(t *testing.T) {
		repo := &fakeAuthRepository{
			emailExistsFn: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			},
		}
		svc := auth.NewService(repo, employeeRepo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Email:      "dana.flores@example.com",
			Password:   "correct horse",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := auth.NewService(&fakeAuthRepository{}, &fakeEmployeeRepository{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Email:      "ghost@example.com",
			Password:   "correct horse",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
