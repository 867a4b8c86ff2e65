package usecase

import (
	"errors"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/policy"
	"review-service/pkg/apperror"
	"review-service/pkg/mailer"
	"review-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenMinter issues access tokens.
type TokenMinter interface {
	Mint(user *entity.User) (string, time.Time, error)
}

// CodeIssuer issues and checks confirmation codes.
type CodeIssuer interface {
	Issue(user *entity.User) string
	Check(user *entity.User, code string) error
}

// Dependencies are the collaborators of the services besides storage.
type Dependencies struct {
	Tokens TokenMinter
	Codes  CodeIssuer
	Mailer mailer.Mailer
	// Now defaults to time.Now.
	Now func() time.Time
}

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Service{
		Auth:     NewAuthService(repo, deps, config, log),
		User:     NewUserService(repo.User, deps.Now, log),
		Category: NewCategoryService(repo.Category, deps.Now, log),
		Genre:    NewGenreService(repo.Genre, deps.Now, log),
		Title:    NewTitleService(repo, deps.Now, log),
		Review:   NewReviewService(repo, deps.Now, log),
		Comment:  NewCommentService(repo, deps.Now, log),
	}
}

// denied is the error for a policy refusal: anonymous callers must
// authenticate, authenticated ones are forbidden.
func denied(actor policy.Actor) error {
	if !actor.Authenticated {
		return apperror.Unauthorized("Authentication credentials were not provided")
	}
	return apperror.Forbidden("You do not have permission to perform this action")
}

// parseID parses a path identifier. A malformed id cannot name an existing
// resource, so it reads as not found.
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NotFound(what + " not found")
	}
	return id, nil
}

// userFieldOf maps a users unique constraint to the request field it guards.
func userFieldOf(err error) (string, bool) {
	constraint, ok := repository.ConstraintOf(err)
	if !ok {
		return "", false
	}
	switch constraint {
	case "users_email_key":
		return "email", true
	default:
		return "username", true
	}
}

// withReserved adds a username error to errs when username is reserved.
func withReserved(errs map[string]string, username string) map[string]string {
	if username != entity.ReservedUsername {
		return errs
	}
	if errs == nil {
		errs = map[string]string{}
	}
	errs["username"] = "Username \"me\" is reserved"
	return errs
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// isMissingReference reports a write whose target was deleted concurrently.
func isMissingReference(err error) bool {
	return errors.Is(err, repository.ErrReferenceMissing)
}
