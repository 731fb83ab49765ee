package repositories

import (
	"context"

	"gorm.io/gorm"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/utils"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, []error) {
	var errors []error
	result := ar.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		errors = append(errors, result.Error)
		return nil, errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) CheckIfUserExists(ctx context.Context, email string) *models.User {
	var user models.User
	result := ar.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error == nil && result.RowsAffected > 0 {
		return &user
	}
	return nil
}

func (ar *AuthenticationRepository) Login(ctx context.Context, login *models.LoginRequestBody) (*models.User, []error) {
	var errors []error
	user := ar.CheckIfUserExists(ctx, login.Email)
	if user == nil {
		errors = append(errors, errs.ErrWrongCredentials)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, login.Password); err != nil {
		errors = append(errors, errs.ErrWrongCredentials)
		return nil, errors
	}
	return user, nil
}

func (ar *AuthenticationRepository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := ar.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, errs.ErrUserNotFound)
	}
	return &user, nil
}

// FindUsersByIDs returns the users that exist among ids, in id order.
func (ar *AuthenticationRepository) FindUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := ar.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ar *AuthenticationRepository) GetAllUsersWithPagination(ctx context.Context, page, size int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	err := ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Order("id ASC").
			Find(&users).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Count(&total).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
