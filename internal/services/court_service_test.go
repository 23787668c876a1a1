package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/authz"
	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/models"
	"github.com/courtsys/judiciary-backend/internal/recycle"
)

// courtFixture is two circuits, one with a magisterial court under it, plus
// principals for every role.
type courtFixture struct {
	db     *gorm.DB
	svc    *CourtService
	engine *recycle.Engine

	admin      authz.Principal
	circAdminA authz.Principal
	clerkA1    authz.Principal

	circuitA *models.CircuitCourt
	circuitB *models.CircuitCourt
	magA1    *models.MagisterialCourt
}

func newCourtFixture(t *testing.T) *courtFixture {
	t.Helper()
	db := newTestDB(t)
	engine := recycle.NewEngine(db)
	f := &courtFixture{
		db:     db,
		svc:    NewCourtService(db, newTestConfig(), engine),
		engine: engine,
	}

	admin := createTestUser(t, db, "root_admin", "secret123", models.RoleAdmin)
	adminA := createTestUser(t, db, "circ_admin_a", "secret123", models.RoleCircuit)
	adminB := createTestUser(t, db, "circ_admin_b", "secret123", models.RoleCircuit)
	clerk := createTestUser(t, db, "clerk_a1", "secret123", models.RoleMagisterial)

	f.circuitA = createTestCircuit(t, db, "First Circuit", adminA)
	f.circuitB = createTestCircuit(t, db, "Second Circuit", adminB)
	f.magA1 = createTestMagisterial(t, db, "Downtown Magisterial", f.circuitA, clerk)

	f.admin = authz.PrincipalFromUser(admin)
	f.circAdminA = principalOf(t, db, adminA.ID)
	f.clerkA1 = principalOf(t, db, clerk.ID)
	return f
}

func TestListCircuitsScoping(t *testing.T) {
	f := newCourtFixture(t)

	t.Run("admin sees all", func(t *testing.T) {
		courts, err := f.svc.ListCircuits(f.admin)
		require.NoError(t, err)
		assert.Len(t, courts, 2)
	})

	t.Run("circuit admin sees own", func(t *testing.T) {
		courts, err := f.svc.ListCircuits(f.circAdminA)
		require.NoError(t, err)
		require.Len(t, courts, 1)
		assert.Equal(t, f.circuitA.ID, courts[0].ID)
	})

	t.Run("clerk sees parent circuit", func(t *testing.T) {
		courts, err := f.svc.ListCircuits(f.clerkA1)
		require.NoError(t, err)
		require.Len(t, courts, 1)
		assert.Equal(t, f.circuitA.ID, courts[0].ID)
	})
}

func TestGetCircuitAuthorization(t *testing.T) {
	f := newCourtFixture(t)

	t.Run("own circuit", func(t *testing.T) {
		court, err := f.svc.GetCircuit(f.circAdminA, f.circuitA.ID)
		require.NoError(t, err)
		assert.Equal(t, "First Circuit", court.Name)
	})

	t.Run("foreign circuit is denied", func(t *testing.T) {
		_, err := f.svc.GetCircuit(f.circAdminA, f.circuitB.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	// Out-of-scope targets are denied before existence is checked, so a
	// nonexistent ID draws the same answer as a foreign one.
	t.Run("nonexistent circuit is denied not missing", func(t *testing.T) {
		_, err := f.svc.GetCircuit(f.circAdminA, uuid.New())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("nonexistent circuit for admin is missing", func(t *testing.T) {
		_, err := f.svc.GetCircuit(f.admin, uuid.New())
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("clerk denied on parent circuit detail", func(t *testing.T) {
		_, err := f.svc.GetCircuit(f.clerkA1, f.circuitA.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCreateCircuitAtomic(t *testing.T) {
	f := newCourtFixture(t)

	req := &dto.CreateCircuitCourtRequest{
		Name:          "Third Circuit",
		Location:      "River City",
		AdminUsername: "circ_admin_c",
		AdminEmail:    "circ.c@test.gov",
		AdminPassword: "secret123",
	}

	created, err := f.svc.CreateCircuit(f.admin, req)
	require.NoError(t, err)
	assert.Equal(t, "Third Circuit", created.Court.Name)
	assert.Equal(t, models.RoleCircuit, created.Administrator.Role)
	require.NotNil(t, created.Administrator.CourtID)
	assert.Equal(t, created.Court.ID, *created.Administrator.CourtID)

	// The administrator account carries the back-reference
	var admin models.User
	require.NoError(t, f.db.First(&admin, "username = ?", "circ_admin_c").Error)
	require.NotNil(t, admin.CourtID)
	assert.Equal(t, created.Court.ID, *admin.CourtID)
	assert.Equal(t, models.CourtKindCircuit, admin.CourtKind)
}

func TestCreateCircuitDuplicateAdminRollsBack(t *testing.T) {
	f := newCourtFixture(t)

	var before int64
	require.NoError(t, f.db.Model(&models.CircuitCourt{}).Count(&before).Error)

	req := &dto.CreateCircuitCourtRequest{
		Name:          "Clone Circuit",
		Location:      "Somewhere",
		AdminUsername: "circ_admin_a", // taken
		AdminEmail:    "clone@test.gov",
		AdminPassword: "secret123",
	}
	_, err := f.svc.CreateCircuit(f.admin, req)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	var after int64
	require.NoError(t, f.db.Model(&models.CircuitCourt{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestCreateCircuitUniquenessIncludesTrash(t *testing.T) {
	f := newCourtFixture(t)
	ctx := context.Background()

	// Trash circuit B; its administrator account goes with it but keeps
	// blocking the username.
	_, err := f.engine.SoftDeleteCircuitCourt(ctx, f.circuitB.ID)
	require.NoError(t, err)

	req := &dto.CreateCircuitCourtRequest{
		Name:          "Replacement Circuit",
		Location:      "Somewhere",
		AdminUsername: "circ_admin_b",
		AdminEmail:    "fresh@test.gov",
		AdminPassword: "secret123",
	}
	_, err = f.svc.CreateCircuit(f.admin, req)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateMagisterial(t *testing.T) {
	f := newCourtFixture(t)

	req := &dto.CreateMagisterialCourtRequest{
		Name:               "Northside Magisterial",
		Location:           "Northside",
		MagistrateUsername: "clerk_a2",
		MagistrateEmail:    "clerk.a2@test.gov",
		MagistratePassword: "secret123",
		Category:           models.CourtCategoryDistrict,
	}

	t.Run("circuit admin under own circuit", func(t *testing.T) {
		created, err := f.svc.CreateMagisterial(f.circAdminA, f.circuitA.ID, req)
		require.NoError(t, err)
		assert.Equal(t, f.circuitA.ID, created.Court.CircuitCourtID)
		assert.Equal(t, models.CourtCategoryDistrict, created.Court.Category)
		require.NotNil(t, created.Magistrate.CircuitCourtID)
		assert.Equal(t, f.circuitA.ID, *created.Magistrate.CircuitCourtID)
	})

	t.Run("circuit admin under foreign circuit", func(t *testing.T) {
		_, err := f.svc.CreateMagisterial(f.circAdminA, f.circuitB.ID, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("clerk cannot create", func(t *testing.T) {
		_, err := f.svc.CreateMagisterial(f.clerkA1, f.circuitA.ID, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCreateMagisterialUnderTrashedParent(t *testing.T) {
	f := newCourtFixture(t)
	ctx := context.Background()

	_, err := f.engine.SoftDeleteCircuitCourt(ctx, f.circuitB.ID)
	require.NoError(t, err)

	req := &dto.CreateMagisterialCourtRequest{
		Name:               "Ghost Magisterial",
		Location:           "Nowhere",
		MagistrateUsername: "ghost_clerk",
		MagistrateEmail:    "ghost@test.gov",
		MagistratePassword: "secret123",
	}
	_, err = f.svc.CreateMagisterial(f.admin, f.circuitB.ID, req)
	assert.ErrorIs(t, err, ErrInactiveParent)
}

func TestListMagisterials(t *testing.T) {
	f := newCourtFixture(t)

	t.Run("circuit admin lists children", func(t *testing.T) {
		courts, err := f.svc.ListMagisterials(f.circAdminA, f.circuitA.ID)
		require.NoError(t, err)
		assert.Len(t, courts, 1)
	})

	t.Run("clerk sees only own court entry", func(t *testing.T) {
		courts, err := f.svc.ListMagisterials(f.clerkA1, f.circuitA.ID)
		require.NoError(t, err)
		require.Len(t, courts, 1)
		assert.Equal(t, f.magA1.ID, courts[0].ID)
	})

	t.Run("clerk denied on foreign circuit", func(t *testing.T) {
		_, err := f.svc.ListMagisterials(f.clerkA1, f.circuitB.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestUpdateMagisterialScoping(t *testing.T) {
	f := newCourtFixture(t)
	name := "Renamed Magisterial"

	t.Run("clerk updates own court", func(t *testing.T) {
		court, err := f.svc.UpdateMagisterial(f.clerkA1, f.magA1.ID, &dto.UpdateMagisterialCourtRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, court.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		empty := ""
		_, err := f.svc.UpdateMagisterial(f.clerkA1, f.magA1.ID, &dto.UpdateMagisterialCourtRequest{Name: &empty})
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestDeleteMagisterial(t *testing.T) {
	f := newCourtFixture(t)
	ctx := context.Background()

	clerkB := createTestUser(t, f.db, "clerk_b1", "secret123", models.RoleMagisterial)
	magB1 := createTestMagisterial(t, f.db, "B Magisterial", f.circuitB, clerkB)

	t.Run("out of scope is denied", func(t *testing.T) {
		_, err := f.svc.DeleteMagisterial(ctx, f.circAdminA, magB1.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("in scope cascades once", func(t *testing.T) {
		counts, err := f.svc.DeleteMagisterial(ctx, f.circAdminA, f.magA1.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), counts.Staff)

		_, err = f.svc.DeleteMagisterial(ctx, f.circAdminA, f.magA1.ID)
		assert.ErrorIs(t, err, recycle.ErrCourtNotFound)
	})
}

func TestCourtStatsScoped(t *testing.T) {
	f := newCourtFixture(t)

	adminStats, err := f.svc.Stats(f.admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminStats.CircuitCourts)
	assert.Equal(t, int64(1), adminStats.MagisterialCourts)
	assert.Equal(t, int64(3), adminStats.TotalCourts)

	circuitStats, err := f.svc.Stats(f.circAdminA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), circuitStats.CircuitCourts)
	assert.Equal(t, int64(1), circuitStats.MagisterialCourts)

	clerkStats, err := f.svc.Stats(f.clerkA1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), clerkStats.CircuitCourts)
	assert.Equal(t, int64(1), clerkStats.MagisterialCourts)
}
