package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"spaceHub/configs"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/utils"
	"spaceHub/internal/validators"
)

type AuthenticationService struct {
	authRepo  *repositories.AuthenticationRepository
	config    *configs.Config
	jwtSecret []byte
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	config *configs.Config,
) *AuthenticationService {
	secret := config.Viper.GetString("jwt.secret")
	if secret == "" {
		slog.Warn("jwt.secret is not set, generating a random key; tokens will not survive a restart")
		secret = utils.GenerateSecretKey()
	}
	return &AuthenticationService{
		authRepo:  authRepo,
		config:    config,
		jwtSecret: []byte(secret),
	}
}

func (as *AuthenticationService) Register(ctx context.Context, body *models.RegisterRequestBody) (*models.UserResponse, []error) {
	var errors []error
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.Username = strings.TrimSpace(body.Username)

	validationErrs := validators.ValidateRegistration(body)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	if as.CheckIfUserExists(ctx, body.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}

	password, err := utils.HashPassword(body.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	user, createErrs := as.authRepo.CreateUser(ctx, &models.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: password,
	})
	if len(createErrs) > 0 {
		return nil, createErrs
	}
	return user.ToUserResponse(), nil
}

func (as *AuthenticationService) Login(ctx context.Context, loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error
	loginData.Email = strings.ToLower(strings.TrimSpace(loginData.Email))

	user, err := as.authRepo.Login(ctx, loginData)
	if err != nil {
		errors = append(errors, err...)
		return nil, errors
	}

	expiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(user.ID, user.Email, user.Username, as.jwtSecret, expiration)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  user.ToUserResponse(),
		Token: token,
	}, nil
}

// VerifyToken validates a bearer token signed by this service.
func (as *AuthenticationService) VerifyToken(token string) (*models.Claims, error) {
	claims, err := utils.VerifyToken(token, as.jwtSecret)
	if err != nil {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

func (as *AuthenticationService) CheckIfUserExists(ctx context.Context, email string) bool {
	return as.authRepo.CheckIfUserExists(ctx, email) != nil
}

func (as *AuthenticationService) GetUser(ctx context.Context, id uint) (*models.UserResponse, []error) {
	user, err := as.authRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, []error{err}
	}
	return user.ToUserResponse(), nil
}

func (as *AuthenticationService) GetAllUsersWithPagination(ctx context.Context, page, size int) (*models.GetUsersResponse, []error) {
	var errors []error
	if page < 1 || size < 1 {
		errors = append(errors, errs.ErrInvalidPageOrSize)
		return nil, errors
	}

	users, total, err := as.authRepo.GetAllUsersWithPagination(ctx, page, size)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToUserResponse())
	}
	return &models.GetUsersResponse{
		Users:      responses,
		Pagination: models.NewPagination(page, size, total),
	}, nil
}
