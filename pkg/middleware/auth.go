package middleware

import (
	"net/http"
	"strings"

	"review-service/internal/data/repository"
	"review-service/internal/policy"
	"review-service/pkg/security"
	"review-service/pkg/utils"

	"go.uber.org/zap"
)

// TokenVerifier checks a bearer credential and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*security.Claims, error)
}

// Authenticate resolves the requester from an optional bearer token. A
// request without Authorization continues as anonymous; a malformed or
// invalid token, or one naming a user that no longer exists, is rejected.
func Authenticate(tokens TokenVerifier, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			token = strings.TrimSpace(token)

			claims, err := tokens.Verify(token)
			if err != nil {
				log.Warn("Invalid access token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID := claims.ParsedUserID()

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Error("Failed to load token user",
					zap.Error(err),
					zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				log.Warn("Token for unknown user", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "User not found")
				return
			}

			ctx := utils.SetActorContext(r.Context(), policy.ActorFor(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Allow rejects requests whose actor fails rule for the request's verb.
// Anonymous requesters get 401, authenticated ones 403.
func Allow(rule func(policy.Actor, policy.Verb) bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := utils.GetActorFromContext(r.Context())
			if rule(actor, policy.VerbOf(r.Method)) {
				next.ServeHTTP(w, r)
				return
			}

			if !actor.Authenticated {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			logger.Warn("Access denied",
				zap.String("user_id", actor.ID.String()),
				zap.String("role", string(actor.Role)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "You do not have permission to perform this action")
		})
	}
}

// Admin allows administrators and superusers only, for every verb.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return Allow(func(a policy.Actor, _ policy.Verb) bool {
		return policy.UserAdminAllowed(a)
	}, logger)
}

// RequireAuth allows any authenticated requester.
func RequireAuth(logger *zap.Logger) func(http.Handler) http.Handler {
	return Allow(func(a policy.Actor, _ policy.Verb) bool {
		return policy.SelfAllowed(a)
	}, logger)
}
