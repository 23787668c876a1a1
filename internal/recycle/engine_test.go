package recycle

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/models"
)

func setupEngineTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

// fixture is a circuit court with two magisterial courts and staff spread
// across all three.
type fixture struct {
	circuit      models.CircuitCourt
	circuitAdmin models.User
	magA         models.MagisterialCourt
	magB         models.MagisterialCourt
	magistrateA  models.User
	magistrateB  models.User
	circuitStaff models.Staff
	magAStaff    models.Staff
	magBStaff    models.Staff
}

func seedHierarchy(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	var f fixture

	f.circuitAdmin = models.User{
		Username: "circuit_admin", Email: "ca@test.gov", Password: "x",
		Name: "Circuit Admin", Role: models.RoleCircuit, IsActive: true,
	}
	require.NoError(t, db.Create(&f.circuitAdmin).Error)

	f.circuit = models.CircuitCourt{
		Name: "First Judicial Circuit", Location: "Capital City",
		AdministratorID: f.circuitAdmin.ID,
	}
	require.NoError(t, db.Create(&f.circuit).Error)

	f.magistrateA = models.User{
		Username: "mag_a", Email: "maga@test.gov", Password: "x",
		Name: "Magistrate A", Role: models.RoleMagisterial, IsActive: true,
	}
	f.magistrateB = models.User{
		Username: "mag_b", Email: "magb@test.gov", Password: "x",
		Name: "Magistrate B", Role: models.RoleMagisterial, IsActive: true,
	}
	require.NoError(t, db.Create(&f.magistrateA).Error)
	require.NoError(t, db.Create(&f.magistrateB).Error)

	f.magA = models.MagisterialCourt{
		Name: "Downtown Magisterial", Location: "Downtown",
		CircuitCourtID: f.circuit.ID, MagistrateID: f.magistrateA.ID,
		Category: models.CourtCategoryMunicipal,
	}
	f.magB = models.MagisterialCourt{
		Name: "Northside Magisterial", Location: "Northside",
		CircuitCourtID: f.circuit.ID, MagistrateID: f.magistrateB.ID,
		Category: models.CourtCategoryDistrict,
	}
	require.NoError(t, db.Create(&f.magA).Error)
	require.NoError(t, db.Create(&f.magB).Error)

	f.circuitStaff = models.Staff{
		Name: "Jane Smith", Email: "jane@test.gov", Position: "Court Clerk",
		CourtID: f.circuit.ID, CourtKind: models.CourtKindCircuit,
		EmployeeID: "EMP000001", EmploymentStatus: models.EmploymentActive,
	}
	f.magAStaff = models.Staff{
		Name: "Robert Johnson", Email: "robert@test.gov", Position: "Bailiff",
		CourtID: f.magA.ID, CourtKind: models.CourtKindMagisterial,
		EmployeeID: "EMP000002", EmploymentStatus: models.EmploymentActive,
	}
	f.magBStaff = models.Staff{
		Name: "Sarah Williams", Email: "sarah@test.gov", Position: "Court Reporter",
		CourtID: f.magB.ID, CourtKind: models.CourtKindMagisterial,
		EmployeeID: "EMP000003", EmploymentStatus: models.EmploymentActive,
	}
	require.NoError(t, db.Create(&f.circuitStaff).Error)
	require.NoError(t, db.Create(&f.magAStaff).Error)
	require.NoError(t, db.Create(&f.magBStaff).Error)

	return f
}

func activeCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func trashedCount(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Unscoped().Model(model).Where("deleted_at IS NOT NULL").Count(&n).Error)
	return n
}

func TestSoftDeleteCircuitCourtCascades(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	counts, err := engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.MagisterialCourts)
	assert.Equal(t, int64(3), counts.Staff)

	assert.Equal(t, int64(0), activeCount(t, db, &models.CircuitCourt{}))
	assert.Equal(t, int64(0), activeCount(t, db, &models.MagisterialCourt{}))
	assert.Equal(t, int64(0), activeCount(t, db, &models.Staff{}))
	assert.Equal(t, int64(0), activeCount(t, db, &models.User{}))

	// The whole cascade shares one deletion timestamp
	var circuit models.CircuitCourt
	require.NoError(t, db.Unscoped().First(&circuit, "id = ?", f.circuit.ID).Error)
	var mag models.MagisterialCourt
	require.NoError(t, db.Unscoped().First(&mag, "id = ?", f.magA.ID).Error)
	var staff models.Staff
	require.NoError(t, db.Unscoped().First(&staff, "id = ?", f.magAStaff.ID).Error)
	assert.Equal(t, circuit.DeletedAt.Time, mag.DeletedAt.Time)
	assert.Equal(t, circuit.DeletedAt.Time, staff.DeletedAt.Time)

	// Parent names are denormalized for recycle-bin display
	assert.Equal(t, f.circuit.Name, mag.DeletedParentName)
	assert.Equal(t, f.magA.Name, staff.DeletedCourtName)

	var circuitStaff models.Staff
	require.NoError(t, db.Unscoped().First(&circuitStaff, "id = ?", f.circuitStaff.ID).Error)
	assert.Equal(t, f.circuit.Name, circuitStaff.DeletedCourtName)
}

func TestSoftDeleteCircuitCourtNotFound(t *testing.T) {
	db := setupEngineTestDB(t)
	engine := NewEngine(db)

	_, err := engine.SoftDeleteCircuitCourt(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestSoftDeleteMagisterialCourtScoped(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)

	counts, err := engine.SoftDeleteMagisterialCourt(context.Background(), f.magA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Staff)

	// Parent circuit, sibling court and their staff are untouched
	assert.Equal(t, int64(1), activeCount(t, db, &models.CircuitCourt{}))
	assert.Equal(t, int64(1), activeCount(t, db, &models.MagisterialCourt{}))
	assert.Equal(t, int64(2), activeCount(t, db, &models.Staff{}))

	var magistrateA models.User
	err = db.First(&magistrateA, "id = ?", f.magistrateA.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var mag models.MagisterialCourt
	require.NoError(t, db.Unscoped().First(&mag, "id = ?", f.magA.ID).Error)
	assert.Equal(t, f.circuit.Name, mag.DeletedParentName)
}

func TestRestoreCircuitCourtRoundTrip(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	_, err := engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)

	counts, err := engine.RestoreCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.MagisterialCourts)
	assert.Equal(t, int64(3), counts.Staff)

	assert.Equal(t, int64(1), activeCount(t, db, &models.CircuitCourt{}))
	assert.Equal(t, int64(2), activeCount(t, db, &models.MagisterialCourt{}))
	assert.Equal(t, int64(3), activeCount(t, db, &models.Staff{}))
	assert.Equal(t, int64(3), activeCount(t, db, &models.User{}))
	assert.Equal(t, int64(0), trashedCount(t, db, &models.Staff{}))

	// Denormalized names are cleared on restore
	var staff models.Staff
	require.NoError(t, db.First(&staff, "id = ?", f.magAStaff.ID).Error)
	assert.Empty(t, staff.DeletedCourtName)
}

func TestRestoreCircuitCourtNotTrashed(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)

	_, err := engine.RestoreCircuitCourt(context.Background(), f.circuit.ID)
	assert.ErrorIs(t, err, ErrNotTrashed)
}

func TestRestoreCircuitCourtLeavesIndependentlyTrashedAlone(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	// magB goes to the bin on its own first. Restoring the circuit later must
	// only lift records stamped by the circuit cascade, so magB, its staff and
	// its magistrate stay trashed, and records outside the subtree are
	// untouched either way.
	other := models.User{Username: "other", Email: "other@test.gov", Password: "x", Name: "Other", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&other).Error)

	_, err := engine.SoftDeleteMagisterialCourt(ctx, f.magB.ID)
	require.NoError(t, err)

	counts, err := engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.MagisterialCourts)
	assert.Equal(t, int64(2), counts.Staff)

	counts, err = engine.RestoreCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.MagisterialCourts)
	assert.Equal(t, int64(2), counts.Staff)

	var mag models.MagisterialCourt
	require.NoError(t, db.Unscoped().First(&mag, "id = ?", f.magB.ID).Error)
	assert.True(t, mag.DeletedAt.Valid)
	var staff models.Staff
	require.NoError(t, db.Unscoped().First(&staff, "id = ?", f.magBStaff.ID).Error)
	assert.True(t, staff.DeletedAt.Valid)
	var magistrate models.User
	require.NoError(t, db.Unscoped().First(&magistrate, "id = ?", f.magistrateB.ID).Error)
	assert.True(t, magistrate.DeletedAt.Valid)

	assert.Equal(t, int64(1), activeCount(t, db, &models.MagisterialCourt{}))

	var u models.User
	assert.NoError(t, db.First(&u, "id = ?", other.ID).Error)
}

func TestRestoreMagisterialCourtLeavesIndependentlyTrashedStaff(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	require.NoError(t, engine.SoftDeleteStaff(ctx, f.magAStaff.ID))
	_, err := engine.SoftDeleteMagisterialCourt(ctx, f.magA.ID)
	require.NoError(t, err)

	counts, err := engine.RestoreMagisterialCourt(ctx, f.magA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.Staff)

	var staff models.Staff
	require.NoError(t, db.Unscoped().First(&staff, "id = ?", f.magAStaff.ID).Error)
	assert.True(t, staff.DeletedAt.Valid)
}

func TestRestoreMagisterialCourtDanglingParent(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	_, err := engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)

	// Parent circuit is still trashed: restoring the child must refuse and
	// mutate nothing.
	_, err = engine.RestoreMagisterialCourt(ctx, f.magA.ID)
	assert.ErrorIs(t, err, ErrDanglingParent)

	var mag models.MagisterialCourt
	require.NoError(t, db.Unscoped().First(&mag, "id = ?", f.magA.ID).Error)
	assert.True(t, mag.DeletedAt.Valid)
	var staff models.Staff
	require.NoError(t, db.Unscoped().First(&staff, "id = ?", f.magAStaff.ID).Error)
	assert.True(t, staff.DeletedAt.Valid)
}

func TestRestoreMagisterialCourtAfterParentRestore(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	_, err := engine.SoftDeleteMagisterialCourt(ctx, f.magA.ID)
	require.NoError(t, err)

	counts, err := engine.RestoreMagisterialCourt(ctx, f.magA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Staff)

	assert.Equal(t, int64(2), activeCount(t, db, &models.MagisterialCourt{}))
	assert.Equal(t, int64(3), activeCount(t, db, &models.Staff{}))

	var magistrate models.User
	assert.NoError(t, db.First(&magistrate, "id = ?", f.magistrateA.ID).Error)
}

func TestStaffSoftDeleteAndRestore(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	require.NoError(t, engine.SoftDeleteStaff(ctx, f.magAStaff.ID))

	var staff models.Staff
	require.NoError(t, db.Unscoped().First(&staff, "id = ?", f.magAStaff.ID).Error)
	assert.True(t, staff.DeletedAt.Valid)
	assert.Equal(t, f.magA.Name, staff.DeletedCourtName)

	// Court stays active
	assert.Equal(t, int64(2), activeCount(t, db, &models.MagisterialCourt{}))

	require.NoError(t, engine.RestoreStaff(ctx, f.magAStaff.ID))
	require.NoError(t, db.First(&staff, "id = ?", f.magAStaff.ID).Error)
	assert.Empty(t, staff.DeletedCourtName)
}

func TestRestoreStaffIntoTrashedCourt(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	require.NoError(t, engine.SoftDeleteStaff(ctx, f.magAStaff.ID))
	_, err := engine.SoftDeleteMagisterialCourt(ctx, f.magA.ID)
	require.NoError(t, err)

	err = engine.RestoreStaff(ctx, f.magAStaff.ID)
	assert.ErrorIs(t, err, ErrDanglingParent)
}

func TestPurgeRequiresTrashed(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	assert.ErrorIs(t, engine.PurgeCircuitCourt(ctx, f.circuit.ID), ErrNotTrashed)
	assert.ErrorIs(t, engine.PurgeMagisterialCourt(ctx, f.magA.ID), ErrNotTrashed)
	assert.ErrorIs(t, engine.PurgeStaff(ctx, f.circuitStaff.ID), ErrNotTrashed)
	assert.ErrorIs(t, engine.PurgeCircuitCourt(ctx, uuid.New()), ErrCourtNotFound)
	assert.ErrorIs(t, engine.PurgeStaff(ctx, uuid.New()), ErrStaffNotFound)
}

func TestPurgeCircuitCourtErasesSubtree(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	_, err := engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)
	require.NoError(t, engine.PurgeCircuitCourt(ctx, f.circuit.ID))

	var n int64
	require.NoError(t, db.Unscoped().Model(&models.CircuitCourt{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Unscoped().Model(&models.MagisterialCourt{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Unscoped().Model(&models.Staff{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Unscoped().Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestEmptyTrash(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	admin := models.User{Username: "admin", Email: "admin@test.gov", Password: "x", Name: "Admin", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	_, err := engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)
	require.NoError(t, engine.EmptyTrash(ctx))

	var n int64
	require.NoError(t, db.Unscoped().Model(&models.CircuitCourt{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
	require.NoError(t, db.Unscoped().Model(&models.Staff{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// Active accounts survive
	var u models.User
	assert.NoError(t, db.First(&u, "id = ?", admin.ID).Error)
}

func TestTrashListing(t *testing.T) {
	db := setupEngineTestDB(t)
	f := seedHierarchy(t, db)
	engine := NewEngine(db)
	ctx := context.Background()

	contents, err := engine.Trash(ctx)
	require.NoError(t, err)
	assert.Empty(t, contents.CircuitCourts)
	assert.Empty(t, contents.MagisterialCourts)
	assert.Empty(t, contents.Staff)

	_, err = engine.SoftDeleteCircuitCourt(ctx, f.circuit.ID)
	require.NoError(t, err)

	contents, err = engine.Trash(ctx)
	require.NoError(t, err)
	assert.Len(t, contents.CircuitCourts, 1)
	assert.Len(t, contents.MagisterialCourts, 2)
	assert.Len(t, contents.Staff, 3)
}
