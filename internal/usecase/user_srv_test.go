package usecase

import (
	"context"
	"testing"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/internal/policy"
	"review-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateMe_NeverChangesRole(t *testing.T) {
	m := newMocks()
	svc := NewUserService(m.users, clock, testLogger())
	ctx := context.Background()
	alice := activeUser("alice", entity.RoleUser)

	m.users.On("FindByID", ctx, alice.ID).Return(alice, nil)
	m.users.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser && u.Bio == "hello"
	})).Return(nil)

	resp, err := svc.UpdateMe(ctx, policy.ActorFor(alice), &request.UpdateMeRequest{Bio: ptr("hello")})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.Equal(t, "hello", resp.Bio)
	m.assertExpectations(t)
}

func TestGetMe_Anonymous(t *testing.T) {
	m := newMocks()
	svc := NewUserService(m.users, clock, testLogger())

	_, err := svc.GetMe(context.Background(), policy.Anonymous())

	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name     string
		req      request.CreateUserRequest
		createFn func(m *mocks)
		kind     apperror.Kind
		field    string
	}{
		{
			name:  "reserved username",
			req:   request.CreateUserRequest{Username: "me", Email: "me@example.com"},
			kind:  apperror.KindValidation,
			field: "username",
		},
		{
			name:  "bad role",
			req:   request.CreateUserRequest{Username: "bob", Email: "bob@example.com", Role: "owner"},
			kind:  apperror.KindValidation,
			field: "role",
		},
		{
			name: "duplicate email",
			req:  request.CreateUserRequest{Username: "bob", Email: "bob@example.com"},
			createFn: func(m *mocks) {
				m.users.On("Create", mock.Anything, mock.Anything).Return(&repository.UniqueError{Constraint: "users_email_key"})
			},
			kind:  apperror.KindValidation,
			field: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			svc := NewUserService(m.users, clock, testLogger())
			if tt.createFn != nil {
				tt.createFn(m)
			}

			_, err := svc.CreateUser(context.Background(), &tt.req)

			require.Error(t, err)
			assert.True(t, apperror.Is(err, tt.kind))
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	m := newMocks()
	svc := NewUserService(m.users, clock, testLogger())

	m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleUser && !u.IsActive
	})).Return(nil)

	resp, err := svc.CreateUser(context.Background(), &request.CreateUserRequest{Username: "bob", Email: "bob@example.com"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.Role)
}

func TestDeleteUser_Unknown(t *testing.T) {
	m := newMocks()
	svc := NewUserService(m.users, clock, testLogger())

	m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	err := svc.DeleteUser(context.Background(), "ghost")

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
