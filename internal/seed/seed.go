package seed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/config"
	"github.com/courtsys/judiciary-backend/internal/models"
)

// EnsureAdmin creates the bootstrap admin account if no admin exists yet.
// ADMIN_PASSWORD must be set on first run; afterwards it is ignored.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		return fmt.Errorf("no admin account exists and ADMIN_PASSWORD is not set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Name:     cfg.AdminName,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("bootstrap admin created", "username", admin.Username)
	return nil
}

// Demo loads a small sample dataset for local development. It is a no-op when
// any circuit court already exists.
func Demo(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Unscoped().Model(&models.CircuitCourt{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return fmt.Errorf("load admin for demo seed: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		circuitAdmin, err := demoUser(tx, cfg, "circuit_admin", "circuit.admin@judiciary.gov", "Circuit Administrator", models.RoleCircuit)
		if err != nil {
			return err
		}

		established := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		circuit := models.CircuitCourt{
			Name:     "First Judicial Circuit",
			Location: "Capital City",
			Address: mustJSON(map[string]string{
				"street": "123 Justice Boulevard",
				"city":   "Capital City",
				"state":  "State",
				"zip":    "12345",
			}),
			Phone:           "+1-555-0100",
			Email:           "first.circuit@judiciary.gov",
			Website:         "https://firstcircuit.judiciary.gov",
			Jurisdiction:    "First Judicial Circuit covers the capital region and surrounding counties.",
			ChiefJudge:      "Hon. Chief Judge Smith",
			Description:     "The First Judicial Circuit serves the capital region with comprehensive judicial services.",
			EstablishedDate: &established,
			AdministratorID: circuitAdmin.ID,
			CreatedByID:     &admin.ID,
		}
		if err := tx.Create(&circuit).Error; err != nil {
			return err
		}
		if err := tx.Model(circuitAdmin).Updates(map[string]interface{}{
			"court_id":   circuit.ID,
			"court_kind": models.CourtKindCircuit,
		}).Error; err != nil {
			return err
		}

		magistrate, err := demoUser(tx, cfg, "magistrate_1", "magistrate1@judiciary.gov", "John Magistrate", models.RoleMagisterial)
		if err != nil {
			return err
		}

		magEstablished := time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC)
		mag := models.MagisterialCourt{
			Name:     "Capital City Magisterial Court",
			Location: "Capital City Downtown",
			Address: mustJSON(map[string]string{
				"street": "456 Court Street",
				"city":   "Capital City",
				"state":  "State",
				"zip":    "12345",
			}),
			Phone:          "+1-555-0200",
			Email:          "capital.magistrate@judiciary.gov",
			CircuitCourtID: circuit.ID,
			MagistrateID:   magistrate.ID,
			Jurisdiction:   "Capital City and immediate suburbs",
			Category:       models.CourtCategoryMunicipal,
			OperatingHours: mustJSON(map[string]string{
				"monday":    "8:00 AM - 5:00 PM",
				"tuesday":   "8:00 AM - 5:00 PM",
				"wednesday": "8:00 AM - 5:00 PM",
				"thursday":  "8:00 AM - 5:00 PM",
				"friday":    "8:00 AM - 4:00 PM",
				"saturday":  "Closed",
				"sunday":    "Closed",
			}),
			Description:     "Handles preliminary hearings, traffic violations, and minor civil matters.",
			EstablishedDate: &magEstablished,
			CreatedByID:     &admin.ID,
		}
		if err := tx.Create(&mag).Error; err != nil {
			return err
		}
		if err := tx.Model(magistrate).Updates(map[string]interface{}{
			"court_id":         mag.ID,
			"court_kind":       models.CourtKindMagisterial,
			"circuit_court_id": circuit.ID,
		}).Error; err != nil {
			return err
		}

		staff := []models.Staff{
			{
				Name:       "Jane Smith",
				Email:      "jane.smith@judiciary.gov",
				Phone:      "+1-555-0301",
				Position:   "Court Clerk",
				Department: "Administration",
				CourtID:    circuit.ID,
				CourtKind:  models.CourtKindCircuit,
				EmployeeID: "EMP000001",
				HireDate:   time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
				Salary:     45000,
			},
			{
				Name:       "Robert Johnson",
				Email:      "robert.johnson@judiciary.gov",
				Phone:      "+1-555-0401",
				Position:   "Bailiff",
				Department: "Security",
				CourtID:    mag.ID,
				CourtKind:  models.CourtKindMagisterial,
				EmployeeID: "EMP000002",
				HireDate:   time.Date(2019, 3, 20, 0, 0, 0, 0, time.UTC),
				Salary:     42000,
			},
			{
				Name:       "Sarah Williams",
				Email:      "sarah.williams@judiciary.gov",
				Phone:      "+1-555-0501",
				Position:   "Court Reporter",
				Department: "Court Services",
				CourtID:    circuit.ID,
				CourtKind:  models.CourtKindCircuit,
				EmployeeID: "EMP000003",
				HireDate:   time.Date(2021, 6, 10, 0, 0, 0, 0, time.UTC),
				Salary:     48000,
			},
		}
		for i := range staff {
			staff[i].EmploymentStatus = models.EmploymentActive
			staff[i].CreatedByID = &admin.ID
			if err := tx.Create(&staff[i]).Error; err != nil {
				return err
			}
		}

		slog.Info("demo dataset seeded",
			"circuit", circuit.Name,
			"magisterial", mag.Name,
			"staff", len(staff))
		return nil
	})
}

func demoUser(tx *gorm.DB, cfg *config.Config, username, email, name string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	if err := tx.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func mustJSON(v interface{}) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
