package sqlite

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/depot/assignment"
	"github.com/xraph/depot/hardware"
	"github.com/xraph/depot/id"
	"github.com/xraph/depot/role"
	"github.com/xraph/depot/software"
	"github.com/xraph/depot/user"
)

// ──────────────────────────────────────────────────
// Hardware model
// ──────────────────────────────────────────────────

type hardwareModel struct {
	grove.BaseModel `grove:"table:depot_hardware"`
	ID              string    `grove:"id,pk"`
	Name            string    `grove:"name,notnull"`
	Type            string    `grove:"type"`
	SerialNumber    string    `grove:"serial_number"`
	Status          string    `grove:"status"`
	Archived        bool      `grove:"archived,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func hardwareToModel(h *hardware.Hardware) *hardwareModel {
	return &hardwareModel{
		ID:           h.ID.String(),
		Name:         h.Name,
		Type:         h.Type,
		SerialNumber: h.SerialNumber,
		Status:       h.Status,
		Archived:     h.Archived,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func hardwareFromModel(m *hardwareModel) (*hardware.Hardware, error) {
	hwID, err := id.ParseHardwareID(m.ID)
	if err != nil {
		return nil, err
	}
	return &hardware.Hardware{
		ID:           hwID,
		Name:         m.Name,
		Type:         m.Type,
		SerialNumber: m.SerialNumber,
		Status:       m.Status,
		Archived:     m.Archived,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// ──────────────────────────────────────────────────
// Software model
// ──────────────────────────────────────────────────

type softwareModel struct {
	grove.BaseModel `grove:"table:depot_software"`
	ID              string     `grove:"id,pk"`
	Name            string     `grove:"name,notnull"`
	Type            string     `grove:"type"`
	LicenseKey      string     `grove:"license_key"`
	Seats           int        `grove:"seats,notnull"`
	Archived        bool       `grove:"archived,notnull"`
	ExpiresAt       *time.Time `grove:"expires_at"`
	CreatedAt       time.Time  `grove:"created_at,notnull"`
	UpdatedAt       time.Time  `grove:"updated_at,notnull"`
}

func softwareToModel(sw *software.Software) *softwareModel {
	return &softwareModel{
		ID:         sw.ID.String(),
		Name:       sw.Name,
		Type:       sw.Type,
		LicenseKey: sw.LicenseKey,
		Seats:      sw.Seats,
		Archived:   sw.Archived,
		ExpiresAt:  sw.ExpiresAt,
		CreatedAt:  sw.CreatedAt,
		UpdatedAt:  sw.UpdatedAt,
	}
}

func softwareFromModel(m *softwareModel) (*software.Software, error) {
	swID, err := id.ParseSoftwareID(m.ID)
	if err != nil {
		return nil, err
	}
	return &software.Software{
		ID:         swID,
		Name:       m.Name,
		Type:       m.Type,
		LicenseKey: m.LicenseKey,
		Seats:      m.Seats,
		Archived:   m.Archived,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

// ──────────────────────────────────────────────────
// User model
// ──────────────────────────────────────────────────

type userModel struct {
	grove.BaseModel `grove:"table:depot_users"`
	ID              string    `grove:"id,pk"`
	ObjectID        string    `grove:"object_id"`
	Username        string    `grove:"username"`
	Email           string    `grove:"email"`
	Name            string    `grove:"name"`
	EmployeeNumber  string    `grove:"employee_number"`
	SupervisorID    *string   `grove:"supervisor_id"`
	RoleID          *string   `grove:"role_id"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func userToModel(u *user.User) *userModel {
	m := &userModel{
		ID:             u.ID.String(),
		ObjectID:       u.ObjectID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		EmployeeNumber: u.EmployeeNumber,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.SupervisorID != nil {
		s := u.SupervisorID.String()
		m.SupervisorID = &s
	}
	if u.RoleID != nil {
		s := u.RoleID.String()
		m.RoleID = &s
	}
	return m
}

func userFromModel(m *userModel) (*user.User, error) {
	uid, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		ID:             uid,
		ObjectID:       m.ObjectID,
		Username:       m.Username,
		Email:          m.Email,
		Name:           m.Name,
		EmployeeNumber: m.EmployeeNumber,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.SupervisorID != nil {
		sup, err := id.ParseUserID(*m.SupervisorID)
		if err != nil {
			return nil, err
		}
		u.SupervisorID = &sup
	}
	if m.RoleID != nil {
		rid, err := id.ParseRoleID(*m.RoleID)
		if err != nil {
			return nil, err
		}
		u.RoleID = &rid
	}
	return u, nil
}

// ──────────────────────────────────────────────────
// Role model
// ──────────────────────────────────────────────────

type roleModel struct {
	grove.BaseModel `grove:"table:depot_roles"`
	ID              string    `grove:"id,pk"`
	Name            string    `grove:"name,notnull"`
	Description     string    `grove:"description"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func roleToModel(r *role.Role) *roleModel {
	return &roleModel{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func roleFromModel(m *roleModel) (*role.Role, error) {
	rid, err := id.ParseRoleID(m.ID)
	if err != nil {
		return nil, err
	}
	return &role.Role{
		ID:          rid,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// ──────────────────────────────────────────────────
// Assignment model
// ──────────────────────────────────────────────────

type assignmentModel struct {
	grove.BaseModel `grove:"table:depot_assignments"`
	ID              string     `grove:"id,pk"`
	HardwareID      *string    `grove:"hardware_id"`
	SoftwareID      *string    `grove:"software_id"`
	UserID          string     `grove:"user_id,notnull"`
	AssignedAt      time.Time  `grove:"assigned_at,notnull"`
	UnassignedAt    *time.Time `grove:"unassigned_at"`
}

func assignmentToModel(a *assignment.Assignment) *assignmentModel {
	m := &assignmentModel{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		AssignedAt:   a.AssignedAt,
		UnassignedAt: a.UnassignedAt,
	}
	if !a.HardwareID.IsNil() {
		s := a.HardwareID.String()
		m.HardwareID = &s
	}
	if !a.SoftwareID.IsNil() {
		s := a.SoftwareID.String()
		m.SoftwareID = &s
	}
	return m
}

func assignmentFromModel(m *assignmentModel) (*assignment.Assignment, error) {
	asgnID, err := id.ParseAssignmentID(m.ID)
	if err != nil {
		return nil, err
	}
	uid, err := id.ParseUserID(m.UserID)
	if err != nil {
		return nil, err
	}
	a := &assignment.Assignment{
		ID:           asgnID,
		UserID:       uid,
		AssignedAt:   m.AssignedAt,
		UnassignedAt: m.UnassignedAt,
	}
	if m.HardwareID != nil {
		if a.HardwareID, err = id.ParseHardwareID(*m.HardwareID); err != nil {
			return nil, err
		}
	}
	if m.SoftwareID != nil {
		if a.SoftwareID, err = id.ParseSoftwareID(*m.SoftwareID); err != nil {
			return nil, err
		}
	}
	return a, nil
}
