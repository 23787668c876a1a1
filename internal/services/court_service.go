package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/authz"
	"github.com/courtsys/judiciary-backend/internal/config"
	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/models"
	"github.com/courtsys/judiciary-backend/internal/recycle"
)

type CourtService struct {
	db        *gorm.DB
	cfg       *config.Config
	hierarchy authz.Hierarchy
	engine    *recycle.Engine
}

func NewCourtService(db *gorm.DB, cfg *config.Config, engine *recycle.Engine) *CourtService {
	return &CourtService{
		db:        db,
		cfg:       cfg,
		hierarchy: authz.NewGormHierarchy(db),
		engine:    engine,
	}
}

// authorize runs the hierarchy evaluator before any resource access. Denials
// are indistinguishable from each other regardless of whether the target
// exists, so existence never leaks outside a caller's subtree.
func (s *CourtService) authorize(actor authz.Principal, res authz.Resource) error {
	if !authz.Evaluate(s.hierarchy, actor.Subject(), res).Allowed() {
		return ErrAccessDenied
	}
	return nil
}

// ListCircuits returns the circuit courts visible to the caller: all for
// admins, their own for circuit administrators, the parent circuit for
// magisterial clerks.
func (s *CourtService) ListCircuits(actor authz.Principal) ([]models.CircuitCourt, error) {
	q := s.db.Preload("Administrator").Order("name")
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleCircuit:
		q = q.Where("id = ?", actor.CourtID)
	case models.RoleMagisterial:
		q = q.Where("id = ?", actor.CircuitCourtID)
	default:
		return nil, ErrAccessDenied
	}

	var courts []models.CircuitCourt
	if err := q.Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (s *CourtService) GetCircuit(actor authz.Principal, id uuid.UUID) (*models.CircuitCourt, error) {
	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindCircuit, CourtID: id}); err != nil {
		return nil, err
	}

	var court models.CircuitCourt
	err := s.db.Preload("Administrator").Preload("MagisterialCourts").
		First(&court, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

// CreateCircuit creates the administrator account and the court in a single
// transaction: user first, then court, then the user patched with the court
// reference. Any failure rolls back all three steps.
func (s *CourtService) CreateCircuit(actor authz.Principal, req *dto.CreateCircuitCourtRequest) (*dto.CircuitCourtCreated, error) {
	var fe fieldErrors
	fe.require(req.Name, "name")
	fe.require(req.Location, "location")
	fe.require(req.AdminUsername, "username")
	fe.require(req.AdminEmail, "admin_email")
	if len(req.AdminPassword) < 6 {
		fe = append(fe, dto.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	if err := s.checkUserUnique(req.AdminUsername, req.AdminEmail); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	adminName := req.AdminName
	if adminName == "" {
		adminName = req.Name + " Administrator"
	}

	var court models.CircuitCourt
	var admin models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		admin = models.User{
			Username:    req.AdminUsername,
			Email:       req.AdminEmail,
			Password:    string(hash),
			Name:        adminName,
			Role:        models.RoleCircuit,
			IsActive:    true,
			CreatedByID: &actor.UserID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create administrator: %w", err)
		}

		court = models.CircuitCourt{
			Name:            req.Name,
			Location:        req.Location,
			Address:         req.Address,
			Phone:           req.Phone,
			Email:           req.Email,
			Website:         req.Website,
			Jurisdiction:    req.Jurisdiction,
			ChiefJudge:      req.ChiefJudge,
			Description:     req.Description,
			EstablishedDate: req.EstablishedDate,
			AdministratorID: admin.ID,
			CreatedByID:     &actor.UserID,
		}
		if err := tx.Create(&court).Error; err != nil {
			return fmt.Errorf("failed to create circuit court: %w", err)
		}

		return tx.Model(&admin).Updates(map[string]interface{}{
			"court_id":   court.ID,
			"court_kind": models.CourtKindCircuit,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	admin.CourtID = &court.ID
	admin.CourtKind = models.CourtKindCircuit
	return &dto.CircuitCourtCreated{
		Court:         court,
		Administrator: dto.NewUserResponse(&admin),
	}, nil
}

func (s *CourtService) UpdateCircuit(actor authz.Principal, id uuid.UUID, req *dto.UpdateCircuitCourtRequest) (*models.CircuitCourt, error) {
	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindCircuit, CourtID: id}); err != nil {
		return nil, err
	}

	var court models.CircuitCourt
	if err := s.db.First(&court, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, invalid("name", "cannot be empty")
		}
		court.Name = *req.Name
	}
	if req.Location != nil {
		if *req.Location == "" {
			return nil, invalid("location", "cannot be empty")
		}
		court.Location = *req.Location
	}
	if req.Address != nil {
		court.Address = *req.Address
	}
	if req.Phone != nil {
		court.Phone = *req.Phone
	}
	if req.Email != nil {
		court.Email = *req.Email
	}
	if req.Website != nil {
		court.Website = *req.Website
	}
	if req.Jurisdiction != nil {
		court.Jurisdiction = *req.Jurisdiction
	}
	if req.ChiefJudge != nil {
		court.ChiefJudge = *req.ChiefJudge
	}
	if req.Description != nil {
		court.Description = *req.Description
	}

	if err := s.db.Save(&court).Error; err != nil {
		return nil, fmt.Errorf("failed to update circuit court: %w", err)
	}
	return &court, nil
}

// DeleteCircuit routes through the cascade engine. Admin only (enforced at
// the route).
func (s *CourtService) DeleteCircuit(ctx context.Context, id uuid.UUID) (recycle.Counts, error) {
	return s.engine.SoftDeleteCircuitCourt(ctx, id)
}

// ListMagisterials returns the active magisterial courts under a circuit.
func (s *CourtService) ListMagisterials(actor authz.Principal, circuitID uuid.UUID) ([]models.MagisterialCourt, error) {
	// A magisterial clerk may list only its own parent's entry for itself.
	if actor.Role == models.RoleMagisterial {
		if actor.CircuitCourtID != circuitID {
			return nil, ErrAccessDenied
		}
		var courts []models.MagisterialCourt
		err := s.db.Where("circuit_court_id = ? AND id = ?", circuitID, actor.CourtID).
			Order("name").Find(&courts).Error
		return courts, err
	}

	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindCircuit, CourtID: circuitID}); err != nil {
		return nil, err
	}

	var courts []models.MagisterialCourt
	err := s.db.Preload("Magistrate").Where("circuit_court_id = ?", circuitID).
		Order("name").Find(&courts).Error
	if err != nil {
		return nil, err
	}
	return courts, nil
}

func (s *CourtService) GetMagisterial(actor authz.Principal, id uuid.UUID) (*models.MagisterialCourt, error) {
	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindMagisterial, CourtID: id}); err != nil {
		return nil, err
	}

	var court models.MagisterialCourt
	err := s.db.Preload("CircuitCourt").Preload("Magistrate").First(&court, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

// CreateMagisterial creates the magistrate account and the court under an
// active circuit court in a single transaction.
func (s *CourtService) CreateMagisterial(actor authz.Principal, circuitID uuid.UUID, req *dto.CreateMagisterialCourtRequest) (*dto.MagisterialCourtCreated, error) {
	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindCircuit, CourtID: circuitID}); err != nil {
		return nil, err
	}

	var fe fieldErrors
	fe.require(req.Name, "name")
	fe.require(req.Location, "location")
	fe.require(req.MagistrateUsername, "username")
	fe.require(req.MagistrateEmail, "magistrate_email")
	if len(req.MagistratePassword) < 6 {
		fe = append(fe, dto.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = models.CourtCategoryMunicipal
	}
	if !category.Valid() {
		return nil, invalid("category", "must be municipal, district, county or other")
	}

	// Writes against a missing or trashed parent are rejected.
	parent, err := models.ResolveCourt(s.db, models.CourtRef{Kind: models.CourtKindCircuit, ID: circuitID})
	if err != nil || !parent.Active() {
		return nil, ErrInactiveParent
	}

	if err := s.checkUserUnique(req.MagistrateUsername, req.MagistrateEmail); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.MagistratePassword), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	magistrateName := req.MagistrateName
	if magistrateName == "" {
		magistrateName = req.Name + " Magistrate"
	}

	var court models.MagisterialCourt
	var magistrate models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		magistrate = models.User{
			Username:       req.MagistrateUsername,
			Email:          req.MagistrateEmail,
			Password:       string(hash),
			Name:           magistrateName,
			Role:           models.RoleMagisterial,
			CircuitCourtID: &circuitID,
			IsActive:       true,
			CreatedByID:    &actor.UserID,
		}
		if err := tx.Create(&magistrate).Error; err != nil {
			return fmt.Errorf("failed to create magistrate: %w", err)
		}

		court = models.MagisterialCourt{
			Name:            req.Name,
			Location:        req.Location,
			Address:         req.Address,
			Phone:           req.Phone,
			Email:           req.Email,
			CircuitCourtID:  circuitID,
			MagistrateID:    magistrate.ID,
			Jurisdiction:    req.Jurisdiction,
			Category:        category,
			OperatingHours:  req.OperatingHours,
			Description:     req.Description,
			EstablishedDate: req.EstablishedDate,
			CreatedByID:     &actor.UserID,
		}
		if err := tx.Create(&court).Error; err != nil {
			return fmt.Errorf("failed to create magisterial court: %w", err)
		}

		return tx.Model(&magistrate).Updates(map[string]interface{}{
			"court_id":   court.ID,
			"court_kind": models.CourtKindMagisterial,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	magistrate.CourtID = &court.ID
	magistrate.CourtKind = models.CourtKindMagisterial
	return &dto.MagisterialCourtCreated{
		Court:      court,
		Magistrate: dto.NewUserResponse(&magistrate),
	}, nil
}

func (s *CourtService) UpdateMagisterial(actor authz.Principal, id uuid.UUID, req *dto.UpdateMagisterialCourtRequest) (*models.MagisterialCourt, error) {
	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindMagisterial, CourtID: id}); err != nil {
		return nil, err
	}

	var court models.MagisterialCourt
	if err := s.db.First(&court, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, invalid("name", "cannot be empty")
		}
		court.Name = *req.Name
	}
	if req.Location != nil {
		if *req.Location == "" {
			return nil, invalid("location", "cannot be empty")
		}
		court.Location = *req.Location
	}
	if req.Address != nil {
		court.Address = *req.Address
	}
	if req.Phone != nil {
		court.Phone = *req.Phone
	}
	if req.Email != nil {
		court.Email = *req.Email
	}
	if req.Jurisdiction != nil {
		court.Jurisdiction = *req.Jurisdiction
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, invalid("category", "must be municipal, district, county or other")
		}
		court.Category = *req.Category
	}
	if req.OperatingHours != nil {
		court.OperatingHours = *req.OperatingHours
	}
	if req.Description != nil {
		court.Description = *req.Description
	}

	if err := s.db.Save(&court).Error; err != nil {
		return nil, fmt.Errorf("failed to update magisterial court: %w", err)
	}
	return &court, nil
}

// DeleteMagisterial routes through the cascade engine after an authorization
// check against the court's subtree.
func (s *CourtService) DeleteMagisterial(ctx context.Context, actor authz.Principal, id uuid.UUID) (recycle.Counts, error) {
	if err := s.authorize(actor, authz.Resource{CourtKind: models.CourtKindMagisterial, CourtID: id}); err != nil {
		return recycle.Counts{}, err
	}
	return s.engine.SoftDeleteMagisterialCourt(ctx, id)
}

// Stats counts courts inside the caller's authorization scope.
func (s *CourtService) Stats(actor authz.Principal) (*dto.CourtStats, error) {
	stats := &dto.CourtStats{}

	circuits := s.db.Model(&models.CircuitCourt{})
	mags := s.db.Model(&models.MagisterialCourt{})
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleCircuit:
		circuits = circuits.Where("id = ?", actor.CourtID)
		mags = mags.Where("circuit_court_id = ?", actor.CourtID)
	case models.RoleMagisterial:
		circuits = circuits.Where("id = ?", actor.CircuitCourtID)
		mags = mags.Where("id = ?", actor.CourtID)
	default:
		return nil, ErrAccessDenied
	}

	if err := circuits.Count(&stats.CircuitCourts).Error; err != nil {
		return nil, err
	}
	if err := mags.Count(&stats.MagisterialCourts).Error; err != nil {
		return nil, err
	}
	stats.TotalCourts = stats.CircuitCourts + stats.MagisterialCourts
	return stats, nil
}

func (s *CourtService) checkUserUnique(username, email string) error {
	var count int64
	if err := s.db.Unscoped().Model(&models.User{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	if err := s.db.Unscoped().Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}
