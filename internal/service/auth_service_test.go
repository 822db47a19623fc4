package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"founderhub/internal/model"
	"founderhub/internal/repository"
	"founderhub/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func newTestAuthService(repo repository.UserRepository) AuthService {
	return NewAuthService(repo, utils.NewSessionTokens("secret", time.Hour), bcrypt.MinCost)
}

func founderSignup() model.SignupRequest {
	return model.SignupRequest{
		Email:     "a@x.com",
		Password:  "secret123",
		FirstName: "A",
		LastName:  "B",
		Role:      model.RoleFounder,
	}
}

func TestAuthService_Signup_FounderDefaults(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := newTestAuthService(repo)

	user, err := svc.Signup(context.Background(), founderSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	stored, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored.Startup)
	assert.Equal(t, "idea", stored.Startup.Stage)
	assert.Equal(t, "pre-seed", stored.Startup.FundingStage)
	assert.Equal(t, "", stored.Startup.Name)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))
}

func TestAuthService_Signup_FounderKeepsSuppliedStartup(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	req := founderSignup()
	req.StartupName = "Acme"
	req.Industry = "SaaS"
	req.Stage = "mvp"
	req.FundingStage = "seed"

	user, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, &model.Startup{Name: "Acme", Industry: "SaaS", Stage: "mvp", FundingStage: "seed"}, user.Startup)
}

func TestAuthService_Signup_NonFounderHasNoStartup(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	req := founderSignup()
	req.Role = model.RoleInvestor
	req.StartupName = "Ignored"

	user, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, user.Startup)
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())

	tests := []struct {
		name   string
		modify func(r *model.SignupRequest)
		want   error
	}{
		{"missing email", func(r *model.SignupRequest) { r.Email = "" }, ErrMissingFields},
		{"missing password", func(r *model.SignupRequest) { r.Password = "" }, ErrMissingFields},
		{"missing first name", func(r *model.SignupRequest) { r.FirstName = "" }, ErrMissingFields},
		{"missing last name", func(r *model.SignupRequest) { r.LastName = "" }, ErrMissingFields},
		{"missing role", func(r *model.SignupRequest) { r.Role = "" }, ErrMissingFields},
		{"missing field wins over bad role", func(r *model.SignupRequest) { r.Email = ""; r.Role = "ceo" }, ErrMissingFields},
		{"invalid role", func(r *model.SignupRequest) { r.Role = "ceo" }, ErrInvalidRole},
		{"role is case sensitive", func(r *model.SignupRequest) { r.Role = "Founder" }, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := founderSignup()
			tt.modify(&req)
			_, err := svc.Signup(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestAuthService_Signup_ValidationNeverTouchesStore(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newTestAuthService(repo)

	req := founderSignup()
	req.Role = "ceo"
	_, err := svc.Signup(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidRole)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := newTestAuthService(repo)

	first, err := svc.Signup(context.Background(), founderSignup())
	require.NoError(t, err)

	again := founderSignup()
	again.Password = "another"
	again.Role = model.RoleMentor
	_, err = svc.Signup(context.Background(), again)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	stored, _ := repo.FindByEmail(context.Background(), "a@x.com")
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, model.RoleFounder, stored.Role)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.PasswordHash))
}

func TestAuthService_Signup_RaceLostIsConflict(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(repository.ErrDuplicateEmail)

	_, err := newTestAuthService(repo).Signup(context.Background(), founderSignup())

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	repo.AssertExpectations(t)
}

func TestAuthService_Signup_StoreUnavailable(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection refused"))

	_, err := newTestAuthService(repo).Signup(context.Background(), founderSignup())

	assert.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_PasswordTooLong(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	req := founderSignup()
	req.Password = strings.Repeat("x", 80)

	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestAuthService_Signup_ConcurrentSameEmail(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	const n = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	created, conflicts := 0, 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), founderSignup())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrUserAlreadyExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	signed, err := svc.Signup(context.Background(), founderSignup())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, signed.ID, user.ID)

	claims, err := utils.NewSessionTokens("secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, signed.ID, claims.UserID())
	assert.Equal(t, model.RoleFounder, claims.Role)
}

func TestAuthService_Login_NonDistinguishingFailures(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	_, err := svc.Signup(context.Background(), founderSignup())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "nope"})
	_, _, unknownEmail := svc.Login(context.Background(), model.LoginRequest{Email: "b@x.com", Password: "secret123"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())

	_, _, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, _, err = svc.Login(context.Background(), model.LoginRequest{Password: "secret123"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthService_Login_NeverWrites(t *testing.T) {
	repo := new(mockUserRepository)
	hash, _ := utils.HashPassword("secret123", bcrypt.MinCost)
	repo.On("FindByEmail", mock.Anything, "a@x.com").
		Return(&model.User{ID: "u1", Email: "a@x.com", PasswordHash: hash, Role: model.RoleAdvisor}, nil)

	_, token, err := newTestAuthService(repo).Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Profile(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryUserRepository())
	signed, err := svc.Signup(context.Background(), founderSignup())
	require.NoError(t, err)

	user, err := svc.Profile(context.Background(), signed.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
