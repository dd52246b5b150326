package repositories

import (
	"context"
	"time"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetRoleByName(ctx context.Context, name string) (*models.UserRole, error)
	ListRoles(ctx context.Context) ([]*models.UserRole, error)
}

// AuditFilter narrows audit log queries
type AuditFilter struct {
	UserID     uint
	Action     string
	EntityType string
}

// AuditRepository defines audit log repository interface
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditFilter, offset, limit int) ([]*models.AuditLog, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// PatientFilter narrows patient list queries
type PatientFilter struct {
	Search   string
	Province string
}

// PatientRepository defines patient repository interface
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByMedicalAidNumber(ctx context.Context, number string) (*models.Patient, error)
	ExistsByMedicalAidNumber(ctx context.Context, number string) (bool, error)
	Update(ctx context.Context, patient *models.Patient) error
	Deactivate(ctx context.Context, id uint) error
	List(ctx context.Context, filter PatientFilter, offset, limit int) ([]*models.Patient, int64, error)
}

// VisitFilter narrows visit list queries
type VisitFilter struct {
	PatientID uint
	Stage     string
}

// ClinicalRepository defines clinical workflow repository interface
type ClinicalRepository interface {
	CreateVisit(ctx context.Context, visit *models.Visit) error
	GetVisitByID(ctx context.Context, id uint) (*models.Visit, error)
	ListVisits(ctx context.Context, filter VisitFilter, offset, limit int) ([]*models.Visit, int64, error)
	UpdateVisitStage(ctx context.Context, id uint, stage string) error

	CreateVitalSigns(ctx context.Context, vitals *models.VitalSigns) error
	ListVitalSignsByVisit(ctx context.Context, visitID uint) ([]*models.VitalSigns, error)

	CreateNote(ctx context.Context, note *models.ClinicalNote) error
	ListNotesByVisit(ctx context.Context, visitID uint) ([]*models.ClinicalNote, error)

	CreatePrescription(ctx context.Context, prescription *models.Prescription) error
	ListPrescriptionsByVisit(ctx context.Context, visitID uint) ([]*models.Prescription, error)

	CreateReferral(ctx context.Context, referral *models.Referral) error
	GetReferralByID(ctx context.Context, id uint) (*models.Referral, error)
	ListReferrals(ctx context.Context, status string, offset, limit int) ([]*models.Referral, int64, error)
	UpdateReferralStatus(ctx context.Context, id uint, status string) error
}

// AssetFilter narrows asset list queries
type AssetFilter struct {
	Status     string
	CategoryID uint
}

// InventoryRepository defines inventory repository interface
type InventoryRepository interface {
	CreateAsset(ctx context.Context, asset *models.Asset) error
	GetAssetByID(ctx context.Context, id uint) (*models.Asset, error)
	ExistsAssetBySerial(ctx context.Context, serial string) (bool, error)
	UpdateAsset(ctx context.Context, asset *models.Asset) error
	ListAssets(ctx context.Context, filter AssetFilter, offset, limit int) ([]*models.Asset, int64, error)
	ListAssetCategories(ctx context.Context) ([]*models.AssetCategory, error)
	ListAssetsWarrantyExpiring(ctx context.Context, from, to string) ([]*models.Asset, error)

	CreateMaintenanceRecord(ctx context.Context, record *models.MaintenanceRecord) error
	ListMaintenanceByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error)

	CreateConsumable(ctx context.Context, consumable *models.Consumable) error
	GetConsumableByID(ctx context.Context, id uint) (*models.Consumable, error)
	UpdateConsumable(ctx context.Context, consumable *models.Consumable) error
	DeactivateConsumable(ctx context.Context, id uint) error
	ListConsumables(ctx context.Context, categoryID uint, offset, limit int) ([]*models.Consumable, int64, error)
	ListActiveConsumables(ctx context.Context) ([]*models.Consumable, error)
	ListConsumableCategories(ctx context.Context) ([]*models.ConsumableCategory, error)

	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	GetSupplierByID(ctx context.Context, id uint) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	ListSuppliers(ctx context.Context, offset, limit int) ([]*models.Supplier, int64, error)

	CreateBatch(ctx context.Context, batch *models.StockBatch) error
	GetBatchByID(ctx context.Context, id uint) (*models.StockBatch, error)
	UpdateBatch(ctx context.Context, batch *models.StockBatch) error
	ListBatchesByConsumable(ctx context.Context, consumableID uint) ([]*models.StockBatch, error)
	ListBatchesExpiringBefore(ctx context.Context, date string) ([]*models.StockBatch, error)
	TotalStock(ctx context.Context, consumableID uint) (int, error)
	CreateAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error

	CreateAlert(ctx context.Context, alert *models.InventoryAlert) error
	ListAlerts(ctx context.Context, unacknowledgedOnly bool, offset, limit int) ([]*models.InventoryAlert, int64, error)
	AcknowledgeAlert(ctx context.Context, id, userID uint) error
	ExistsOpenAlert(ctx context.Context, alertType string, consumableID uint, stockID *uint) (bool, error)
}

// AppointmentFilter narrows appointment list queries
type AppointmentFilter struct {
	LocationID uint
	Status     string
	Date       string
}

// ScheduleRepository defines route and appointment repository interface
type ScheduleRepository interface {
	CreateRoute(ctx context.Context, route *models.Route) error
	GetRouteByID(ctx context.Context, id uint) (*models.Route, error)
	UpdateRoute(ctx context.Context, route *models.Route) error
	DeactivateRoute(ctx context.Context, id uint) error
	ListRoutes(ctx context.Context, province string, offset, limit int) ([]*models.Route, int64, error)

	CreateLocation(ctx context.Context, location *models.Location) error
	GetLocationByID(ctx context.Context, id uint) (*models.Location, error)
	ListLocationsByRoute(ctx context.Context, routeID uint) ([]*models.Location, error)
	CountActiveAppointments(ctx context.Context, locationID uint) (int64, error)

	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	GetAppointmentByReference(ctx context.Context, reference string) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uint, status string) error
	ListAppointments(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error)
	CountAppointmentsByStatus(ctx context.Context, date string) (map[string]int64, error)
}
