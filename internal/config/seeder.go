package config

import (
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// Seeder seeds reference data
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log := logger.Get()

	if err := s.seedRoles(); err != nil {
		return err
	}
	if err := s.seedAssetCategories(); err != nil {
		return err
	}
	if err := s.seedConsumableCategories(); err != nil {
		return err
	}

	log.Info().Msg("seeding completed")
	return nil
}

func (s *Seeder) seedRoles() error {
	roles := []models.UserRole{
		{RoleName: models.RoleAdministrator, Description: "Full system access including user management"},
		{RoleName: models.RoleDoctor, Description: "Clinical consultations, notes, prescriptions and referrals"},
		{RoleName: models.RoleNurse, Description: "Patient intake, vital signs and stock handling"},
		{RoleName: models.RoleClerk, Description: "Patient registration and appointment administration"},
		{RoleName: models.RoleSocialWorker, Description: "Counseling stage and social referrals"},
		{RoleName: models.RoleInventoryManager, Description: "Assets, consumables, suppliers and stock"},
		{RoleName: models.RoleFinance, Description: "Cost reporting over inventory and suppliers"},
		{RoleName: models.RoleViewer, Description: "Read only access"},
	}

	for _, role := range roles {
		var existing models.UserRole
		err := s.db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedAssetCategories() error {
	categories := []models.AssetCategory{
		{CategoryName: "Medical Equipment", Description: "Diagnostic and treatment devices"},
		{CategoryName: "Vehicles", Description: "Mobile clinic vehicles and trailers"},
		{CategoryName: "IT Equipment", Description: "Laptops, tablets and network gear"},
		{CategoryName: "Furniture", Description: "Examination beds, chairs and cabinets"},
	}

	for _, category := range categories {
		var existing models.AssetCategory
		err := s.db.Where("category_name = ?", category.CategoryName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&category).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedConsumableCategories() error {
	categories := []models.ConsumableCategory{
		{CategoryName: "Medication", Description: "Dispensable drugs"},
		{CategoryName: "Consumables", Description: "Gloves, syringes, dressings"},
		{CategoryName: "Test Kits", Description: "Rapid diagnostic test kits"},
		{CategoryName: "Office Supplies", Description: "Forms, stationery and printing"},
	}

	for _, category := range categories {
		var existing models.ConsumableCategory
		err := s.db.Where("category_name = ?", category.CategoryName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&category).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
