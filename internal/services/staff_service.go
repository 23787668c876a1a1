package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/courtsys/judiciary-backend/internal/authz"
	"github.com/courtsys/judiciary-backend/internal/dto"
	"github.com/courtsys/judiciary-backend/internal/models"
	"github.com/courtsys/judiciary-backend/internal/recycle"
)

const employeeIDPrefix = "EMP"

type StaffService struct {
	db        *gorm.DB
	hierarchy authz.Hierarchy
	engine    *recycle.Engine
}

func NewStaffService(db *gorm.DB, engine *recycle.Engine) *StaffService {
	return &StaffService{
		db:        db,
		hierarchy: authz.NewGormHierarchy(db),
		engine:    engine,
	}
}

func (s *StaffService) authorize(actor authz.Principal, ref models.CourtRef) error {
	res := authz.Resource{CourtKind: ref.Kind, CourtID: ref.ID}
	if !authz.Evaluate(s.hierarchy, actor.Subject(), res).Allowed() {
		return ErrAccessDenied
	}
	return nil
}

// ListAll returns every active staff record. Admin only (enforced at the
// route).
func (s *StaffService) ListAll(search string) ([]models.Staff, error) {
	q := s.db.Order("name")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR position LIKE ? OR department LIKE ? OR employee_id LIKE ?",
			like, like, like, like, like)
	}

	var staff []models.Staff
	if err := q.Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// ListByCourt returns a court's active staff after an authorization check.
func (s *StaffService) ListByCourt(actor authz.Principal, ref models.CourtRef) ([]models.Staff, error) {
	if !ref.Kind.Valid() {
		return nil, invalid("court_kind", "must be circuit or magisterial")
	}
	if err := s.authorize(actor, ref); err != nil {
		return nil, err
	}

	var staff []models.Staff
	err := s.db.Where("court_kind = ? AND court_id = ?", ref.Kind, ref.ID).
		Order("name").Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// ListByStatus returns staff with a given employment status inside the
// caller's scope.
func (s *StaffService) ListByStatus(actor authz.Principal, status models.EmploymentStatus) ([]models.Staff, error) {
	if !status.Valid() {
		return nil, invalid("status", "must be active, retired, dismissed or on_leave")
	}

	q, err := s.scoped(actor)
	if err != nil {
		return nil, err
	}

	var staff []models.Staff
	if err := q.Where("employment_status = ?", status).Order("name").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// Get returns one staff record. Out-of-scope callers receive ErrAccessDenied
// whether or not the record exists.
func (s *StaffService) Get(actor authz.Principal, id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.Unscoped().Preload("Supervisor").First(&staff, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if actor.IsAdmin() {
				return nil, ErrStaffNotFound
			}
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	if err := s.authorize(actor, staff.CourtRefValue()); err != nil {
		return nil, err
	}
	if staff.DeletedAt.Valid {
		return nil, ErrStaffNotFound
	}
	return &staff, nil
}

// Create adds a staff record to an active court inside the caller's scope and
// assigns the next employee identifier.
func (s *StaffService) Create(actor authz.Principal, req *dto.CreateStaffRequest) (*models.Staff, error) {
	var fe fieldErrors
	fe.require(req.Name, "name")
	fe.require(req.Email, "email")
	fe.require(req.Position, "position")
	if !req.CourtKind.Valid() {
		fe = append(fe, dto.FieldError{Field: "court_kind", Message: "must be circuit or magisterial"})
	}
	if req.CourtID == uuid.Nil {
		fe = append(fe, dto.FieldError{Field: "court_id", Message: "is required"})
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	ref := models.CourtRef{Kind: req.CourtKind, ID: req.CourtID}
	if err := s.authorize(actor, ref); err != nil {
		return nil, err
	}

	court, err := models.ResolveCourt(s.db, ref)
	if err != nil || !court.Active() {
		return nil, ErrInactiveParent
	}

	if err := s.checkEmailUnique(req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	status := req.EmploymentStatus
	if status == "" {
		status = models.EmploymentActive
	}
	if !status.Valid() {
		return nil, invalid("employment_status", "must be active, retired, dismissed or on_leave")
	}

	hireDate := time.Now()
	if req.HireDate != nil {
		hireDate = *req.HireDate
	}

	staff := models.Staff{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Position:         req.Position,
		Department:       req.Department,
		CourtID:          req.CourtID,
		CourtKind:        req.CourtKind,
		HireDate:         hireDate,
		Salary:           req.Salary,
		EmploymentStatus: status,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		SupervisorID:     req.SupervisorID,
		Notes:            req.Notes,
		CreatedByID:      &actor.UserID,
	}
	if status.Terminal() {
		now := time.Now()
		staff.StatusChangeDate = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		employeeID, err := nextEmployeeID(tx)
		if err != nil {
			return err
		}
		staff.EmployeeID = employeeID
		return tx.Create(&staff).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create staff record: %w", err)
	}
	return &staff, nil
}

// Update modifies a staff record. The employee identifier is never
// reassigned; a transition into retired/dismissed stamps StatusChangeDate.
func (s *StaffService) Update(actor authz.Principal, id uuid.UUID, req *dto.UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != staff.Email {
		if err := s.checkEmailUnique(*req.Email, staff.ID); err != nil {
			return nil, err
		}
		staff.Email = *req.Email
	}
	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Position != nil {
		staff.Position = *req.Position
	}
	if req.Department != nil {
		staff.Department = *req.Department
	}
	if req.Salary != nil {
		staff.Salary = *req.Salary
	}
	if req.EmploymentStatus != nil && *req.EmploymentStatus != staff.EmploymentStatus {
		if !req.EmploymentStatus.Valid() {
			return nil, invalid("employment_status", "must be active, retired, dismissed or on_leave")
		}
		staff.EmploymentStatus = *req.EmploymentStatus
		if req.EmploymentStatus.Terminal() {
			now := time.Now()
			staff.StatusChangeDate = &now
		}
	}
	if req.Address != nil {
		staff.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		staff.EmergencyContact = *req.EmergencyContact
	}
	if req.SupervisorID != nil {
		staff.SupervisorID = req.SupervisorID
	}
	if req.Notes != nil {
		staff.Notes = *req.Notes
	}
	staff.LastModifiedByID = &actor.UserID

	if err := s.db.Save(staff).Error; err != nil {
		return nil, fmt.Errorf("failed to update staff record: %w", err)
	}
	return staff, nil
}

// Delete moves a staff record to the recycle bin via the cascade engine.
func (s *StaffService) Delete(ctx context.Context, actor authz.Principal, id uuid.UUID) error {
	if _, err := s.Get(actor, id); err != nil {
		return err
	}
	return s.engine.SoftDeleteStaff(ctx, id)
}

// Stats summarizes staff inside the caller's scope.
func (s *StaffService) Stats(actor authz.Principal) (*dto.StaffStats, error) {
	stats := &dto.StaffStats{
		ByStatus: make(map[models.EmploymentStatus]int64),
		ByKind:   make(map[models.CourtKind]int64),
	}

	q, err := s.scoped(actor)
	if err != nil {
		return nil, err
	}
	if err := q.Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		EmploymentStatus models.EmploymentStatus
		Count            int64
	}
	var byStatus []statusCount
	q, _ = s.scoped(actor)
	if err := q.Select("employment_status, count(*) as count").
		Group("employment_status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, r := range byStatus {
		stats.ByStatus[r.EmploymentStatus] = r.Count
	}

	type kindCount struct {
		CourtKind models.CourtKind
		Count     int64
	}
	var byKind []kindCount
	q, _ = s.scoped(actor)
	if err := q.Select("court_kind, count(*) as count").
		Group("court_kind").Scan(&byKind).Error; err != nil {
		return nil, err
	}
	for _, r := range byKind {
		stats.ByKind[r.CourtKind] = r.Count
	}
	return stats, nil
}

// scoped returns a staff query restricted to the caller's subtree.
func (s *StaffService) scoped(actor authz.Principal) (*gorm.DB, error) {
	q := s.db.Model(&models.Staff{})
	switch actor.Role {
	case models.RoleAdmin:
		return q, nil
	case models.RoleCircuit:
		sub := s.db.Model(&models.MagisterialCourt{}).Select("id").
			Where("circuit_court_id = ?", actor.CourtID)
		return q.Where(
			"(court_kind = ? AND court_id = ?) OR (court_kind = ? AND court_id IN (?))",
			models.CourtKindCircuit, actor.CourtID,
			models.CourtKindMagisterial, sub,
		), nil
	case models.RoleMagisterial:
		return q.Where("court_kind = ? AND court_id = ?",
			models.CourtKindMagisterial, actor.CourtID), nil
	default:
		return nil, ErrAccessDenied
	}
}

func (s *StaffService) checkEmailUnique(email string, excludeID uuid.UUID) error {
	var count int64
	q := s.db.Unscoped().Model(&models.Staff{}).Where("email = ?", email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

// nextEmployeeID assigns EMP-prefixed zero-padded identifiers, one past the
// highest existing identifier including trashed records.
func nextEmployeeID(tx *gorm.DB) (string, error) {
	var last models.Staff
	err := tx.Unscoped().Model(&models.Staff{}).
		Where("employee_id LIKE ?", employeeIDPrefix+"%").
		Order("employee_id DESC").Limit(1).Find(&last).Error
	if err != nil {
		return "", err
	}

	next := 1
	if last.EmployeeID != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last.EmployeeID, employeeIDPrefix))
		if err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%06d", employeeIDPrefix, next), nil
}
