package database

import (
	"fmt"
	"log"

	"admin-service/internal/model"
	"admin-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection with the provided configuration
func InitDB(cfg *config.Config) error {
	var err error

	// Set default log level if not specified
	logLevel := cfg.DB.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// Connect to the database with DisableAutoPrepare option to prevent "prepared statement already exists" errors
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	DB, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
		return err
	}

	// Configure connection pool
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
		return err
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	// AutoMigrate will automatically create or update the table structure based on our models
	err = DB.AutoMigrate(Models()...)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
		return err
	}

	fmt.Println("Database connected and migrated successfully")
	return nil
}

// Models returns every model this service persists, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Business{},
		&model.Store{},
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.UserBusinessRole{},
		&model.BusinessSetting{},
		&model.StoreSetting{},
		&model.Product{},
		&model.ProductCategory{},
		&model.Brand{},
		&model.Supplier{},
		&model.Coupon{},
		&model.CouponUsage{},
		&model.Promotion{},
		&model.PromotionUsage{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Customer{},
		&model.SavedCart{},
		&model.PublicOrder{},
		&model.SupplyOrder{},
		&model.SupplyOrderItem{},
		&model.SupplyOrderPayment{},
		&model.SupplyReturn{},
		&model.SupplyReturnItem{},
		&model.RestockOrder{},
		&model.RestockOrderItem{},
		&model.ActivityLog{},
		&model.Notification{},
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
