package database

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"spaceHub/configs"
	"spaceHub/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDB opens and migrates the configured database once; failures end the process.
func GetDB(config *configs.Config) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = Open(config)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err = Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		slog.Info("database migrated successfully")
	})
	return db
}

func Open(config *configs.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn), TranslateError: true}

	switch driver := config.Viper.GetString("database.driver"); driver {
	case DriverPostgres:
		psql := getPSQL(config)
		dsn := fmt.Sprintf(
			"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
			psql.Host, psql.User, psql.Password, psql.Name, psql.Port, psql.SSL, psql.Timezone,
		)
		return gorm.Open(postgres.Open(dsn), gormConfig)
	case DriverSQLite:
		return gorm.Open(sqlite.Open(config.Viper.GetString("database.dsn")), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// OpenSQLite opens a sqlite database with the given dsn and migrates it. Tests use it
// with in-memory dsns.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	sqliteDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(sqliteDB); err != nil {
		return nil, err
	}
	return sqliteDB, nil
}

func getPSQL(config *configs.Config) *models.PSQL {
	return &models.PSQL{
		Host:     config.Viper.GetString("database.host"),
		Port:     config.Viper.GetInt("database.port"),
		User:     config.Viper.GetString("database.user"),
		Password: config.Viper.GetString("database.password"),
		Name:     config.Viper.GetString("database.name"),
		SSL:      config.Viper.GetString("database.ssl"),
		Timezone: config.Viper.GetString("database.timezone"),
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Task{},
		&models.Document{},
		&models.Channel{},
		&models.Message{},
		&models.Event{},
		&models.Whiteboard{},
		&models.Activity{},
	)
}
