package models

import (
	"time"
)

// ============================================================
// Auth & Audit Tables
// ============================================================

// Known role names. Role assignments reference user_roles rows,
// these constants exist for guard declarations.
const (
	RoleAdministrator    = "administrator"
	RoleDoctor           = "doctor"
	RoleNurse            = "nurse"
	RoleClerk            = "clerk"
	RoleSocialWorker     = "social_worker"
	RoleInventoryManager = "inventory_manager"
	RoleFinance          = "finance"
	RoleViewer           = "viewer"
)

// Audit actions
const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionDeactivate = "DEACTIVATE"
	ActionLogin      = "LOGIN"
	ActionLogout     = "LOGOUT"
	ActionReceive    = "RECEIVE"
	ActionAdjust     = "ADJUST"
)

// UserRole represents user_roles table
type UserRole struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoleName    string    `gorm:"uniqueIndex;size:50;not null" json:"role_name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// User represents users table
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:50;not null" json:"first_name"`
	LastName     string     `gorm:"size:50;not null" json:"last_name"`
	RoleID       uint       `gorm:"index;not null" json:"role_id"`
	Role         UserRole   `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Phone        string     `gorm:"size:20" json:"phone"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role.RoleName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// AuditLog represents audit_log table. Rows are append only.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Action     string    `gorm:"size:20;not null" json:"action"`
	EntityType string    `gorm:"size:50;not null;index" json:"entity_type"`
	EntityID   uint      `gorm:"index" json:"entity_id"`
	Timestamp  time.Time `gorm:"index;not null" json:"timestamp"`
	Details    string    `gorm:"type:text" json:"details"`
	IPAddress  string    `gorm:"size:45" json:"ip_address"`
	UserAgent  string    `gorm:"size:255" json:"user_agent"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
