package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"decorlens/domain/models"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Board{},
		&models.DetectedItem{},
		&models.Product{},
		&models.ItemProductMatch{},
	); err != nil {
		return fmt.Errorf("failed to run auto migrations: %w", err)
	}

	// Indexes AutoMigrate cannot express
	migrations := []string{
		`CREATE INDEX IF NOT EXISTS idx_matches_item_score ON item_product_matches(detected_item_id, match_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_detected_items_board_created ON detected_items(board_id, created_at)`,
	}
	for _, sql := range migrations {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("migration failed: %s: %w", sql, err)
		}
	}

	return nil
}
