package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/authz"
	"github.com/courtsys/judiciary-backend/internal/config"
	"github.com/courtsys/judiciary-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		BcryptCost:       bcrypt.MinCost,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		Username: username,
		Email:    username + "@test.gov",
		Password: string(hash),
		Name:     username,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createTestCircuit(t *testing.T, db *gorm.DB, name string, admin *models.User) *models.CircuitCourt {
	t.Helper()
	court := &models.CircuitCourt{
		Name:            name,
		Location:        "Test City",
		AdministratorID: admin.ID,
	}
	require.NoError(t, db.Create(court).Error)
	require.NoError(t, db.Model(admin).Updates(map[string]interface{}{
		"court_id":   court.ID,
		"court_kind": models.CourtKindCircuit,
	}).Error)
	admin.CourtID = &court.ID
	admin.CourtKind = models.CourtKindCircuit
	return court
}

func createTestMagisterial(t *testing.T, db *gorm.DB, name string, circuit *models.CircuitCourt, magistrate *models.User) *models.MagisterialCourt {
	t.Helper()
	court := &models.MagisterialCourt{
		Name:           name,
		Location:       "Test Town",
		CircuitCourtID: circuit.ID,
		MagistrateID:   magistrate.ID,
		Category:       models.CourtCategoryMunicipal,
	}
	require.NoError(t, db.Create(court).Error)
	require.NoError(t, db.Model(magistrate).Updates(map[string]interface{}{
		"court_id":         court.ID,
		"court_kind":       models.CourtKindMagisterial,
		"circuit_court_id": circuit.ID,
	}).Error)
	court.Magistrate = magistrate
	magistrate.CourtID = &court.ID
	magistrate.CourtKind = models.CourtKindMagisterial
	magistrate.CircuitCourtID = &circuit.ID
	return court
}

func principalOf(t *testing.T, db *gorm.DB, userID interface{}) authz.Principal {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	return authz.PrincipalFromUser(&u)
}
