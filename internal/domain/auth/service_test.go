package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if u.ID == "" {
		u.ID = "new-user-id" // simulate BeforeCreate
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role UserRole) ([]User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID, email, role string) (string, error) {
	return "token-" + userID + "-" + role, nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Register_DefaultsToPatient(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "new@clinic.test").Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Role == RolePatient && u.IsActive && u.PasswordHash != "secret1"
	})).Return(nil)

	svc := NewService(repo, stubJWT{})
	res, err := svc.Register(context.Background(), RegisterRequest{
		Email: "new@clinic.test", Password: "secret1", FirstName: "Ada", LastName: "Lovelace",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-new-user-id-patient", res.AccessToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret1")))
	repo.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "dup@clinic.test").Return(&User{ID: "u1"}, nil)

	_, err := NewService(repo, stubJWT{}).Register(context.Background(), RegisterRequest{Email: "dup@clinic.test"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_RejectsAdminRole(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, ErrUserNotFound)

	_, err := NewService(repo, stubJWT{}).Register(context.Background(), RegisterRequest{Email: "x@clinic.test", Role: RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_Login(t *testing.T) {
	active := &User{ID: "u1", Email: "doc@clinic.test", Role: RoleDoctor, IsActive: true, PasswordHash: hashed(t, "pass123")}
	disabled := &User{ID: "u2", Email: "off@clinic.test", Role: RolePatient, IsActive: false, PasswordHash: hashed(t, "pass123")}

	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "doc@clinic.test").Return(active, nil)
	repo.On("GetByEmail", mock.Anything, "off@clinic.test").Return(disabled, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@clinic.test").Return(nil, ErrUserNotFound)
	repo.On("GetByEmail", mock.Anything, "broken@clinic.test").Return(nil, errors.New("db down"))
	svc := NewService(repo, stubJWT{})
	ctx := context.Background()

	res, err := svc.Login(ctx, LoginRequest{Email: "doc@clinic.test", Password: "pass123"})
	require.NoError(t, err)
	assert.Equal(t, "token-u1-doctor", res.AccessToken)

	_, err = svc.Login(ctx, LoginRequest{Email: "doc@clinic.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@clinic.test", Password: "pass123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "off@clinic.test", Password: "pass123"})
	assert.ErrorIs(t, err, ErrAccountDisabled)

	_, err = svc.Login(ctx, LoginRequest{Email: "broken@clinic.test", Password: "pass123"})
	assert.EqualError(t, err, "db down")
}

func TestService_UpdateUser(t *testing.T) {
	u := &User{ID: "u1", FirstName: "Old", IsActive: true}
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(u, nil)
	repo.On("Update", mock.Anything, u).Return(nil)

	name := "New"
	off := false
	got, err := NewService(repo, stubJWT{}).UpdateUser(context.Background(), "u1", UpdateUserRequest{FirstName: &name, IsActive: &off})

	require.NoError(t, err)
	assert.Equal(t, "New", got.FirstName)
	assert.False(t, got.IsActive)
}
