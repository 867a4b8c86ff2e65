package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/pkg/apperror"
	"review-service/pkg/security"
	"review-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	m      *mocks
	mailer *MockMailer
	tokens *MockTokens
	codes  *MockCodes
	svc    AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		m:      newMocks(),
		mailer: new(MockMailer),
		tokens: new(MockTokens),
		codes:  new(MockCodes),
	}
	deps := Dependencies{Tokens: f.tokens, Codes: f.codes, Mailer: f.mailer, Now: clock}
	svc := NewAuthService(f.m.repository(), deps, &utils.Config{}, testLogger()).(*authService)
	svc.dispatch = func(run func()) { run() }
	f.svc = svc
	return f
}

func pendingUser(username, email string) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: fixedNow, UpdatedAt: fixedNow},
		Username: username,
		Email:    email,
		Role:     entity.RoleUser,
	}
}

func TestSignUp_CreatesPendingUserAndMailsCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.m.users.On("FindByUsername", ctx, "alice").Return(nil, nil)
	f.m.users.On("FindByEmail", ctx, "alice@example.com").Return(nil, nil)
	f.m.users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice" && !u.IsActive && u.Role == entity.RoleUser
	})).Return(nil)
	f.codes.On("Issue", mock.Anything).Return("code-1")
	f.mailer.On("Send", mock.Anything, "alice@example.com", confirmationSubject, mock.MatchedBy(func(body string) bool {
		return body == "Your confirmation code: code-1"
	})).Return(nil)

	resp, err := f.svc.SignUp(ctx, &request.SignUpRequest{Username: "alice", Email: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	f.m.assertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestSignUp_RepeatedPairReusesUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	existing := pendingUser("alice", "alice@example.com")

	f.m.users.On("FindByUsername", ctx, "alice").Return(existing, nil)
	f.codes.On("Issue", existing).Return("code-2")
	f.mailer.On("Send", mock.Anything, "alice@example.com", confirmationSubject, mock.Anything).Return(nil)

	resp, err := f.svc.SignUp(ctx, &request.SignUpRequest{Username: "alice", Email: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	f.m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_MailFailureDoesNotFailRequest(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	existing := pendingUser("alice", "alice@example.com")

	f.m.users.On("FindByUsername", ctx, "alice").Return(existing, nil)
	f.codes.On("Issue", existing).Return("code")
	f.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := f.svc.SignUp(ctx, &request.SignUpRequest{Username: "alice", Email: "alice@example.com"})

	assert.NoError(t, err)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.SignUp(context.Background(), &request.SignUpRequest{Username: "me", Email: "me@example.com"})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "username")
	f.m.users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestSignUp_Clashes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *authFixture)
		field string
	}{
		{
			name: "username taken with other email",
			setup: func(f *authFixture) {
				f.m.users.On("FindByUsername", mock.Anything, "alice").
					Return(pendingUser("alice", "other@example.com"), nil)
			},
			field: "username",
		},
		{
			name: "email taken by other username",
			setup: func(f *authFixture) {
				f.m.users.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
				f.m.users.On("FindByEmail", mock.Anything, "alice@example.com").
					Return(pendingUser("bob", "alice@example.com"), nil)
			},
			field: "email",
		},
		{
			name: "lost race on insert",
			setup: func(f *authFixture) {
				f.m.users.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
				f.m.users.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
				f.m.users.On("Create", mock.Anything, mock.Anything).
					Return(&repository.UniqueError{Constraint: "users_email_key"})
			},
			field: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setup(f)

			_, err := f.svc.SignUp(context.Background(), &request.SignUpRequest{Username: "alice", Email: "alice@example.com"})

			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Fields, tt.field)
			f.codes.AssertNotCalled(t, "Issue", mock.Anything)
		})
	}
}

func TestSignUp_ConcurrentSamePairReusesWinner(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	winner := pendingUser("alice", "alice@example.com")

	f.m.users.On("FindByUsername", ctx, "alice").Return(nil, nil).Once()
	f.m.users.On("FindByEmail", ctx, "alice@example.com").Return(nil, nil)
	f.m.users.On("Create", ctx, mock.Anything).
		Return(&repository.UniqueError{Constraint: "users_username_key"})
	f.m.users.On("FindByUsername", ctx, "alice").Return(winner, nil).Once()
	f.codes.On("Issue", winner).Return("code-3")
	f.mailer.On("Send", mock.Anything, "alice@example.com", confirmationSubject, mock.Anything).Return(nil)

	resp, err := f.svc.SignUp(ctx, &request.SignUpRequest{Username: "alice", Email: "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	f.m.assertExpectations(t)
	f.codes.AssertExpectations(t)
}

func TestObtainToken_ActivatesAndMints(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := pendingUser("alice", "alice@example.com")
	expires := fixedNow.Add(24 * time.Hour)

	f.m.users.On("FindByUsername", ctx, "alice").Return(user, nil)
	f.codes.On("Check", user, "good").Return(nil)
	f.m.users.On("Activate", ctx, user.ID, fixedNow).Return(nil)
	f.tokens.On("Mint", mock.MatchedBy(func(u *entity.User) bool {
		return u.IsActive && u.LastLogin != nil && u.LastLogin.Equal(fixedNow)
	})).Return("jwt-token", expires, nil)

	resp, err := f.svc.ObtainToken(ctx, &request.TokenRequest{Username: "alice", ConfirmationCode: "good"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, expires, resp.ExpiresAt)
	f.m.assertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func TestObtainToken_InvalidCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := pendingUser("alice", "alice@example.com")

	f.m.users.On("FindByUsername", ctx, "alice").Return(user, nil)
	f.codes.On("Check", user, "bad").Return(security.ErrCodeMismatch)

	_, err := f.svc.ObtainToken(ctx, &request.TokenRequest{Username: "alice", ConfirmationCode: "bad"})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindInvalidCode))
	f.m.users.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything, mock.Anything)
	f.tokens.AssertNotCalled(t, "Mint", mock.Anything)
}

func TestObtainToken_UnknownUser(t *testing.T) {
	f := newAuthFixture()
	f.m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := f.svc.ObtainToken(context.Background(), &request.TokenRequest{Username: "ghost", ConfirmationCode: "x"})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestObtainToken_MissingFields(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.ObtainToken(context.Background(), &request.TokenRequest{Username: "alice"})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
