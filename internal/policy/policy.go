// Package policy decides who may read or write which resource.
//
// Every rule is a pure function of the requester, the verb class, and for
// object-level rules the resource author. Collection-level rules run before a
// handler touches storage; object-level rules run once the resource is loaded.
package policy

import (
	"net/http"

	"review-service/internal/data/entity"

	"github.com/google/uuid"
)

// Verb is the class of an HTTP-like operation.
type Verb int

const (
	Safe Verb = iota
	Unsafe
)

// VerbOf classifies an HTTP method. GET, HEAD and OPTIONS are safe.
func VerbOf(method string) Verb {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Safe
	default:
		return Unsafe
	}
}

// Actor is the requester of an operation.
type Actor struct {
	ID            uuid.UUID
	Username      string
	Role          entity.UserRole
	Superuser     bool
	Authenticated bool
}

// Anonymous returns the actor used for requests without a credential.
func Anonymous() Actor {
	return Actor{}
}

// ActorFor returns the authenticated actor for u.
func ActorFor(u *entity.User) Actor {
	return Actor{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		Superuser:     u.IsSuperuser,
		Authenticated: true,
	}
}

// IsAdmin reports whether a is an authenticated administrator or superuser.
func (a Actor) IsAdmin() bool {
	if !a.Authenticated {
		return false
	}
	if a.Superuser {
		return true
	}
	switch a.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleModerator, entity.RoleUser:
		return false
	default:
		return false
	}
}

// IsModerator reports whether a is an authenticated moderator.
func (a Actor) IsModerator() bool {
	if !a.Authenticated {
		return false
	}
	switch a.Role {
	case entity.RoleModerator:
		return true
	case entity.RoleAdmin, entity.RoleUser:
		return false
	default:
		return false
	}
}

// CatalogAllowed gates categories, genres and titles: anyone reads,
// only administrators write.
func CatalogAllowed(a Actor, v Verb) bool {
	switch v {
	case Safe:
		return true
	case Unsafe:
		return a.IsAdmin()
	default:
		return false
	}
}

// UserAdminAllowed gates the user management endpoints for every verb.
func UserAdminAllowed(a Actor) bool {
	return a.IsAdmin()
}

// SelfAllowed gates the self-profile endpoint.
func SelfAllowed(a Actor) bool {
	return a.Authenticated
}

// ContentCollectionAllowed gates review and comment collections: anyone
// reads, any authenticated user may attempt a write.
func ContentCollectionAllowed(a Actor, v Verb) bool {
	switch v {
	case Safe:
		return true
	case Unsafe:
		return a.Authenticated
	default:
		return false
	}
}

// ContentObjectAllowed gates a single review or comment written by authorID.
// Writes are allowed to the author, moderators and administrators.
func ContentObjectAllowed(a Actor, v Verb, authorID uuid.UUID) bool {
	switch v {
	case Safe:
		return true
	case Unsafe:
		if !a.Authenticated {
			return false
		}
		return a.ID == authorID || a.IsAdmin() || a.IsModerator()
	default:
		return false
	}
}
