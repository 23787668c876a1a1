package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/authz"
	"github.com/courtsys/judiciary-backend/internal/config"
	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/models"
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// List returns users, optionally filtered by role and a free-text search over
// username, name and email. Admin only (enforced at the route).
func (s *UserService) List(role models.Role, search string) ([]models.User, error) {
	q := s.db.Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("username LIKE ? OR name LIKE ? OR email LIKE ?", like, like, like)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns a user. Non-admin callers may only fetch their own record.
func (s *UserService) Get(actor authz.Principal, id uuid.UUID) (*models.User, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, ErrAccessDenied
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create makes a user account. The role fixes the kind of court the account
// must be affiliated with; the referenced court must be active.
func (s *UserService) Create(actor authz.Principal, req *dto.CreateUserRequest) (*models.User, error) {
	var fe fieldErrors
	fe.require(req.Username, "username")
	fe.require(req.Email, "email")
	fe.require(req.Name, "name")
	if len(req.Password) < 6 {
		fe = append(fe, dto.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if !req.Role.Valid() {
		fe = append(fe, dto.FieldError{Field: "role", Message: "must be admin, circuit or magisterial"})
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	if req.Role != models.RoleAdmin {
		expectedKind, _ := req.Role.CourtKind()
		if req.CourtID == nil {
			return nil, invalid("court_id", "is required for non-admin roles")
		}
		if req.CourtKind != expectedKind {
			return nil, invalid("court_kind", fmt.Sprintf("must be %q for role %q", expectedKind, req.Role))
		}
		court, err := models.ResolveCourt(s.db, models.CourtRef{Kind: req.CourtKind, ID: *req.CourtID})
		if err != nil || !court.Active() {
			return nil, ErrInactiveParent
		}
		if req.Role == models.RoleMagisterial {
			if req.CircuitCourtID == nil {
				return nil, invalid("circuit_court_id", "is required for magisterial users")
			}
			var mc models.MagisterialCourt
			if err := s.db.Select("circuit_court_id").First(&mc, "id = ?", *req.CourtID).Error; err != nil {
				return nil, err
			}
			if mc.CircuitCourtID != *req.CircuitCourtID {
				return nil, invalid("circuit_court_id", "does not match the court's parent circuit")
			}
		}
	}

	if err := s.checkUnique(req.Username, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hash),
		Name:           req.Name,
		Role:           req.Role,
		CourtID:        req.CourtID,
		CourtKind:      req.CourtKind,
		CircuitCourtID: req.CircuitCourtID,
		IsActive:       true,
		CreatedByID:    &actor.UserID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Update changes mutable account fields. Admin only (enforced at the route).
func (s *UserService) Update(id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkUnique("", *req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// ResetPassword sets a new password without verifying the old one and revokes
// all refresh tokens. Admin only (enforced at the route).
func (s *UserService) ResetPassword(id uuid.UUID, req *dto.ResetPasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return invalid("new_password", "must be at least 6 characters")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).
			Where("user_id = ?", id).
			Update("revoked", true).Error
	})
}

// Delete removes a user account. Admins may not delete themselves.
func (s *UserService) Delete(actor authz.Principal, id uuid.UUID) error {
	if actor.UserID == id {
		return ErrSelfDelete
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RefreshToken{}).
			Where("user_id = ?", id).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// Stats summarizes accounts by role. Admin only (enforced at the route).
func (s *UserService) Stats() (*dto.UserStats, error) {
	stats := &dto.UserStats{ByRole: make(map[models.Role]int64)}

	if err := s.db.Model(&models.User{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).
		Count(&stats.Active).Error; err != nil {
		return nil, err
	}

	type roleCount struct {
		Role  models.Role
		Count int64
	}
	var rows []roleCount
	if err := s.db.Model(&models.User{}).
		Select("role, count(*) as count").Group("role").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ByRole[r.Role] = r.Count
	}
	return stats, nil
}

// checkUnique enforces username/email uniqueness across active AND trashed
// records: a trashed duplicate blocks reuse until it is permanently erased.
func (s *UserService) checkUnique(username, email string, excludeID uuid.UUID) error {
	if username != "" {
		var count int64
		q := s.db.Unscoped().Model(&models.User{}).Where("username = ?", username)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
	}
	if email != "" {
		var count int64
		q := s.db.Unscoped().Model(&models.User{}).Where("email = ?", email)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
	}
	return nil
}
