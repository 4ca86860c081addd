package services

import (
	"context"
	"errors"
	"strings"

	"antika-pos/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Phone    *string
	DNI      *string
	Active   *bool
}

// ErrInvalidCredentials is returned by Login for an unknown email, a wrong
// password or an inactive account alike
var ErrInvalidCredentials = newError(KindValidation, "invalid email or password")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseRole(s string) (models.UserRole, error) {
	r := models.UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !models.ValidRole(r) {
		return "", Validation("invalid role %q, must be admin, cook, waiter or client", s)
	}
	return r, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundOr(err, "user %d not found", id)
	}
	return &u, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" ||
		in.Email == nil || strings.TrimSpace(*in.Email) == "" ||
		in.Password == nil || *in.Password == "" {
		return nil, Validation("name, email and password are required")
	}
	if len(*in.Password) < 6 {
		return nil, Validation("password must be at least 6 characters")
	}
	u := &models.User{
		Name:   strings.TrimSpace(*in.Name),
		Email:  normalizeEmail(*in.Email),
		Role:   models.RoleClient,
		Active: true,
	}
	if in.Role != nil && *in.Role != "" {
		r, err := parseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		u.Role = r
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.DNI != nil {
		u.DNI = *in.DNI
	}
	if in.Active != nil {
		u.Active = *in.Active
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return nil, storeErr(err)
	}
	if count > 0 {
		return nil, Validation("email %s is already registered", u.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storeErr(err)
	}
	u.PasswordHash = string(hash)
	if err := db.Create(u).Error; err != nil {
		return nil, storeErr(err)
	}
	return u, nil
}

// Login checks the credentials of an active user
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ? AND active = ?", normalizeEmail(email), true).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			var count int64
			if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				return nil, storeErr(err)
			}
			if count > 0 {
				return nil, Validation("email %s is already registered", email)
			}
			u.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 6 {
			return nil, Validation("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, storeErr(err)
		}
		u.PasswordHash = string(hash)
	}
	if in.Role != nil && *in.Role != "" {
		r, err := parseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		u.Role = r
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.DNI != nil {
		u.DNI = *in.DNI
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if err := db.Save(u).Error; err != nil {
		return nil, storeErr(err)
	}
	return u, nil
}

func (s *UserService) ChangeRole(ctx context.Context, email, role string) (*models.User, error) {
	r, err := parseRole(role)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var u models.User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&u).Error; err != nil {
		return nil, notFoundOr(err, "user %s not found", email)
	}
	u.Role = r
	if err := db.Model(&u).Update("role", r).Error; err != nil {
		return nil, storeErr(err)
	}
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("user %d not found", id)
	}
	return nil
}
