package usecase

import (
	"context"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/internal/dto/response"
	"review-service/internal/policy"
	"review-service/pkg/apperror"
	"review-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// Administrative endpoints; callers are already checked by policy.
	GetAllUsers(ctx context.Context, search string, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUser(ctx context.Context, username string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, username string) error

	// Self-profile endpoints.
	GetMe(ctx context.Context, actor policy.Actor) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, actor policy.Actor, req *request.UpdateMeRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, now func() time.Time, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		now:      now,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAllUsers(ctx context.Context, search string, req request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to get users", err)
	}

	total, err := us.userRepo.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal("failed to count users", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page))

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	errs := withReserved(utils.ValidateStruct(req), req.Username)
	if len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	role, _ := entity.ParseRole(req.Role)

	now := us.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if field, ok := userFieldOf(err); ok {
			return nil, apperror.FieldInvalid(field, "A user with that "+field+" already exists")
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) findByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (us *userService) GetUser(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return us.apply(ctx, user, req)
}

// apply validates req and writes its set fields onto user.
func (us *userService) apply(ctx context.Context, user *entity.User, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	errs := utils.ValidateStruct(req)
	if req.Username != nil {
		errs = withReserved(errs, *req.Username)
	}
	if len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		role, _ := entity.ParseRole(*req.Role)
		user.Role = role
	}
	user.Touch(us.now())

	if err := us.userRepo.Update(ctx, user); err != nil {
		if field, ok := userFieldOf(err); ok {
			return nil, apperror.FieldInvalid(field, "A user with that "+field+" already exists")
		}
		if isNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal("failed to update user", err)
	}

	us.log.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, username string) error {
	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, user.ID); err != nil {
		if isNotFound(err) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal("failed to delete user", err)
	}

	return nil
}

func (us *userService) me(ctx context.Context, actor policy.Actor) (*entity.User, error) {
	if !policy.SelfAllowed(actor) {
		return nil, denied(actor)
	}

	user, err := us.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal("failed to get profile", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("User not found")
	}
	return user, nil
}

func (us *userService) GetMe(ctx context.Context, actor policy.Actor) (*response.UserResponse, error) {
	user, err := us.me(ctx, actor)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateMe updates the caller's own profile. The role is never changed here.
func (us *userService) UpdateMe(ctx context.Context, actor policy.Actor, req *request.UpdateMeRequest) (*response.UserResponse, error) {
	user, err := us.me(ctx, actor)
	if err != nil {
		return nil, err
	}

	update := req.AsUserUpdate()
	return us.apply(ctx, user, &update)
}
