package repository

import (
	"context"
	"errors"
	"fmt"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewUser is the input for Users.Create. The password arrives already hashed.
type NewUser struct {
	Name         string
	Email        string
	Phone        string
	Role         models.UserRole
	PasswordHash string
}

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create stores a user with a fresh id. Emails are unique; patients get the
// next MR number, counted over existing patient accounts. The email check runs
// before the insert, so a concurrent registration for the same address is
// caught by the unique index instead and reported the same way.
func (r *Users) Create(ctx context.Context, in NewUser) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RolePatient
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("invalid role %q", in.Role)
	}
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Select("id").First(&existing, "email = ?", in.Email).Error
		if err == nil {
			return apperr.Validation("email already registered")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var mrn *string
		if in.Role == models.RolePatient {
			var patients int64
			if err := tx.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&patients).Error; err != nil {
				return err
			}
			n := fmt.Sprintf("MR%06d", patients+1)
			mrn = &n
		}

		user = models.User{
			ID:                  uuid.NewString(),
			Name:                in.Name,
			Email:               in.Email,
			Phone:               in.Phone,
			Role:                in.Role,
			MedicalRecordNumber: mrn,
			PasswordHash:        in.PasswordHash,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Validation("email already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Users) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user %s not found", id)
	}
	return &user, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err, "user with email %s not found", email)
	}
	return &user, nil
}

func (r *Users) List(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var users []models.User
	if err := q.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies the non-nil fields of upd. A role change does not assign or
// revoke a medical record number.
func (r *Users) Update(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if upd.Role != nil && !upd.Role.Valid() {
		return nil, apperr.Validation("invalid role %q", *upd.Role)
	}
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return translate(err, "user %s not found", id)
		}
		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Phone != nil {
			user.Phone = *upd.Phone
		}
		if upd.Role != nil {
			user.Role = *upd.Role
		}
		if upd.MedicalRecordNumber != nil {
			user.MedicalRecordNumber = upd.MedicalRecordNumber
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Users) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("user %s not found", id)
		}
		return nil
	})
}
