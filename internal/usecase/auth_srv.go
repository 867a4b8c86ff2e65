package usecase

import (
	"context"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/internal/dto/response"
	"review-service/pkg/apperror"
	"review-service/pkg/mailer"
	"review-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	confirmationSubject = "Your confirmation code"
	mailTimeout         = 30 * time.Second
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error)
	ObtainToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens TokenMinter
	codes  CodeIssuer
	mailer mailer.Mailer
	config *utils.Config
	now    func() time.Time
	// dispatch runs mail delivery off the request path.
	dispatch func(func())
	log      *zap.Logger
}

func NewAuthService(repo *repository.Repository, deps Dependencies, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		tokens:   deps.Tokens,
		codes:    deps.Codes,
		mailer:   deps.Mailer,
		config:   config,
		now:      deps.Now,
		dispatch: func(f func()) { go f() },
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error) {
	errs := withReserved(utils.ValidateStruct(req), req.Username)
	if len(errs) > 0 {
		s.log.Warn("Sign up validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	user, err := s.findOrCreatePending(ctx, req)
	if err != nil {
		return nil, err
	}

	code := s.codes.Issue(user)
	if s.config != nil && s.config.App.Debug {
		s.log.Debug("Confirmation code issued",
			zap.String("username", user.Username),
			zap.String("code", code))
	}

	to := user.Email
	s.dispatch(func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		body := "Your confirmation code: " + code
		if err := s.mailer.Send(mailCtx, to, confirmationSubject, body); err != nil {
			s.log.Error("Failed to send confirmation code",
				zap.Error(err),
				zap.String("email", to))
		}
	})

	s.log.Info("Confirmation code sent",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.SignUpResponse{Username: user.Username, Email: user.Email}, nil
}

// findOrCreatePending returns the live user owning exactly this
// (username, email) pair, or creates a pending one. Any partial clash is a
// validation error on the clashing field.
func (s *authService) findOrCreatePending(ctx context.Context, req *request.SignUpRequest) (*entity.User, error) {
	byName, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal("failed to check username", err)
	}
	if byName != nil {
		if byName.Email == req.Email {
			return byName, nil
		}
		return nil, apperror.FieldInvalid("username", "A user with that username already exists")
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("failed to check email", err)
	}
	if byEmail != nil {
		return nil, apperror.FieldInvalid("email", "A user with that email already exists")
	}

	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
		IsActive: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if field, ok := userFieldOf(err); ok {
			// A concurrent sign-up for the same pair won the insert.
			winner, findErr := s.repo.User.FindByUsername(ctx, req.Username)
			if findErr != nil {
				return nil, apperror.Internal("failed to check username", findErr)
			}
			if winner != nil && winner.Email == req.Email {
				return winner, nil
			}
			return nil, apperror.FieldInvalid(field, "A user with that "+field+" already exists")
		}
		return nil, apperror.Internal("failed to create account", err)
	}

	s.log.Info("Pending user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return user, nil
}

func (s *authService) ObtainToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, apperror.FieldNotFound("username", "User not found")
	}

	if err := s.codes.Check(user, req.ConfirmationCode); err != nil {
		s.log.Warn("Confirmation code rejected",
			zap.String("username", user.Username),
			zap.Error(err))
		return nil, apperror.InvalidCode("Invalid confirmation code")
	}

	now := s.now()
	if err := s.repo.User.Activate(ctx, user.ID, now); err != nil {
		return nil, apperror.Internal("failed to activate user", err)
	}
	user.IsActive = true
	user.LastLogin = &now
	user.Touch(now)

	token, expiresAt, err := s.tokens.Mint(user)
	if err != nil {
		s.log.Error("Failed to mint token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Internal("failed to issue token", err)
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt))

	return &response.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}
