package policy

import (
	"net/http"
	"testing"

	"review-service/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func actor(role entity.UserRole) Actor {
	return Actor{ID: uuid.New(), Username: string(role), Role: role, Authenticated: true}
}

func TestVerbOf(t *testing.T) {
	assert.Equal(t, Safe, VerbOf(http.MethodGet))
	assert.Equal(t, Safe, VerbOf(http.MethodHead))
	assert.Equal(t, Safe, VerbOf(http.MethodOptions))
	assert.Equal(t, Unsafe, VerbOf(http.MethodPost))
	assert.Equal(t, Unsafe, VerbOf(http.MethodPatch))
	assert.Equal(t, Unsafe, VerbOf(http.MethodPut))
	assert.Equal(t, Unsafe, VerbOf(http.MethodDelete))
}

func TestActor_Predicates(t *testing.T) {
	tests := []struct {
		name      string
		actor     Actor
		admin     bool
		moderator bool
	}{
		{"anonymous", Anonymous(), false, false},
		{"user", actor(entity.RoleUser), false, false},
		{"moderator", actor(entity.RoleModerator), false, true},
		{"admin", actor(entity.RoleAdmin), true, false},
		{"superuser with user role", Actor{ID: uuid.New(), Role: entity.RoleUser, Superuser: true, Authenticated: true}, true, false},
		{"unknown role", actor(entity.UserRole("owner")), false, false},
		{"unauthenticated admin role", Actor{Role: entity.RoleAdmin}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admin, tt.actor.IsAdmin())
			assert.Equal(t, tt.moderator, tt.actor.IsModerator())
		})
	}
}

func TestCatalogAllowed(t *testing.T) {
	for _, a := range []Actor{Anonymous(), actor(entity.RoleUser), actor(entity.RoleModerator), actor(entity.RoleAdmin)} {
		assert.True(t, CatalogAllowed(a, Safe), "read must be open to %q", a.Username)
	}

	assert.False(t, CatalogAllowed(Anonymous(), Unsafe))
	assert.False(t, CatalogAllowed(actor(entity.RoleUser), Unsafe))
	assert.False(t, CatalogAllowed(actor(entity.RoleModerator), Unsafe))
	assert.True(t, CatalogAllowed(actor(entity.RoleAdmin), Unsafe))
}

func TestUserAdminAndSelf(t *testing.T) {
	assert.False(t, UserAdminAllowed(Anonymous()))
	assert.False(t, UserAdminAllowed(actor(entity.RoleModerator)))
	assert.True(t, UserAdminAllowed(actor(entity.RoleAdmin)))

	assert.False(t, SelfAllowed(Anonymous()))
	assert.True(t, SelfAllowed(actor(entity.RoleUser)))
}

func TestContentAllowed(t *testing.T) {
	author := actor(entity.RoleUser)
	stranger := actor(entity.RoleUser)

	tests := []struct {
		name  string
		actor Actor
		verb  Verb
		want  bool
	}{
		{"anonymous reads", Anonymous(), Safe, true},
		{"anonymous writes", Anonymous(), Unsafe, false},
		{"author writes own", author, Unsafe, true},
		{"stranger writes other", stranger, Unsafe, false},
		{"stranger reads other", stranger, Safe, true},
		{"moderator writes other", actor(entity.RoleModerator), Unsafe, true},
		{"admin writes other", actor(entity.RoleAdmin), Unsafe, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentObjectAllowed(tt.actor, tt.verb, author.ID))
		})
	}

	assert.True(t, ContentCollectionAllowed(Anonymous(), Safe))
	assert.False(t, ContentCollectionAllowed(Anonymous(), Unsafe))
	assert.True(t, ContentCollectionAllowed(stranger, Unsafe))
}

func TestActorFor(t *testing.T) {
	u := &entity.User{Username: "bob", Role: entity.RoleModerator}
	u.ID = uuid.New()

	a := ActorFor(u)

	assert.True(t, a.Authenticated)
	assert.Equal(t, u.ID, a.ID)
	assert.True(t, a.IsModerator())
}
