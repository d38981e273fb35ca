package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is lowered by tests.
var PasswordHashCost = bcrypt.DefaultCost

type UserServiceImpl struct {
	repo     repository.UserRepository
	config   config.JWTConfig
	pageSize int
}

func CreateUserService(repo repository.UserRepository, config *config.Config) UserService {
	jwtConfig := config.JWTConfig
	if jwtConfig.ExpiryHours <= 0 {
		jwtConfig.ExpiryHours = 24
	}

	return &UserServiceImpl{repo: repo, config: jwtConfig, pageSize: config.PageSize}
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.UserRequest) (resp dto.LoginResponse, err error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" || !isValidEmail(req.Email) {
		return resp, errs.ErrClient
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if !existing.ID.IsZero() {
		return resp, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordHashCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return resp, errs.ErrInternalServer
	}

	user := domain.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		ExternalID:     ulid.Make().String(),
	}

	user.ID, err = s.repo.AddUser(ctx, user)
	if err != nil {
		return
	}

	return s.loginResponse(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, req dto.UserRequest) (resp dto.LoginResponse, err error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return
	}

	if user.ID.IsZero() {
		return resp, errs.ErrInvalidCredentialsEmail
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password))
	if err != nil {
		log.Ctx(ctx).Info().Str("component", "Login").Msg("password mismatch")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	return s.loginResponse(user)
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, user domain.User) (resp dto.UserResponse, err error) {
	user, err = s.repo.GetUserByID(ctx, user.ID.Hex())
	if err != nil {
		return
	}

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, user domain.User, req dto.UserRequest) (resp dto.LoginResponse, err error) {
	user, err = s.repo.GetUserByID(ctx, user.ID.Hex())
	if err != nil {
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}

	if req.Email != "" {
		email := normalizeEmail(req.Email)
		if !isValidEmail(email) {
			return resp, errs.ErrClient
		}
		if err = s.checkEmailAvailable(ctx, email, user); err != nil {
			return
		}
		user.Email = email
	}

	if req.Password != "" {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordHashCost)
		if hashErr != nil {
			log.Ctx(ctx).Error().Err(hashErr).Str("component", "UpdateProfile").Msg("")
			return resp, errs.ErrInternalServer
		}
		user.HashedPassword = string(hash)
	}

	if err = s.repo.UpdateUser(ctx, user); err != nil {
		return
	}

	return s.loginResponse(user)
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter.Normalize(s.pageSize)

	users, err := s.repo.GetUsers(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.repo.CountUsers(ctx, filter)
	if err != nil {
		return
	}

	records := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		records = append(records, toUserResponse(user))
	}

	resp.Records = records
	resp.Metadata = pkgdto.CreatePaginationMetadata(count, filter.Page, filter.Limit)

	return
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, req dto.AdminUserUpdateRequest) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, req.ID)
	if err != nil {
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}

	if req.Email != "" {
		email := normalizeEmail(req.Email)
		if !isValidEmail(email) {
			return resp, errs.ErrClient
		}
		if err = s.checkEmailAvailable(ctx, email, user); err != nil {
			return
		}
		user.Email = email
	}

	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err = s.repo.UpdateUser(ctx, user); err != nil {
		return
	}

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	if user.IsAdmin {
		return errs.ErrCannotDeleteAdmin
	}

	return s.repo.DeleteUser(ctx, user.ID)
}

func (s *UserServiceImpl) checkEmailAvailable(ctx context.Context, email string, user domain.User) error {
	if email == user.Email {
		return nil
	}

	other, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !other.ID.IsZero() && other.ID != user.ID {
		return errs.ErrEmailAlreadyUsed
	}

	return nil
}

func (s *UserServiceImpl) loginResponse(user domain.User) (resp dto.LoginResponse, err error) {
	token, err := utils.CreateJWTToken(utils.TokenUser{
		UserID:     user.ID.Hex(),
		ExternalID: user.ExternalID,
		Name:       user.Name,
		IsAdmin:    user.IsAdmin,
	}, s.config.JWTSecret, time.Duration(s.config.ExpiryHours)*time.Hour)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateJWTToken").Msg("")
		return resp, errs.ErrInternalServer
	}

	return dto.LoginResponse{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

func toUserResponse(user domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID.Hex(),
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Email:      user.Email,
		IsAdmin:    user.IsAdmin,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
