package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-ops/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase inserts a default admin, the base room types and a few rooms
// when the tables are empty.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Staff ----------------
	var staffCount int64
	db.Model(&models.Staff{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Staff{
				Username:  "admin",
				Email:     "admin@hotel.local",
				FirstName: "Admin",
				LastName:  "User",
				Password:  string(hash),
				Role:      models.RoleAdmin,
				Position:  models.PositionManagement,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)

	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room", Capacity: 2, Price: decimal.NewFromInt(1200),
				Amenities: datatypes.JSONSlice[string]{"Wi-Fi", "Air conditioning"}},
			{Name: "Superior", Description: "Superior Room", Capacity: 3, Price: decimal.NewFromInt(1800),
				Amenities: datatypes.JSONSlice[string]{"Wi-Fi", "Air conditioning", "Mini bar"}},
			{Name: "Deluxe", Description: "Deluxe Room", Capacity: 4, Price: decimal.NewFromInt(2400),
				Amenities: datatypes.JSONSlice[string]{"Wi-Fi", "Air conditioning", "Mini bar", "Bathtub"}},
			{Name: "Connecting", Description: "Connecting Room", Capacity: 5, Price: decimal.NewFromInt(3000),
				Amenities: datatypes.JSONSlice[string]{"Wi-Fi", "Air conditioning", "Two bathrooms"}},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			log.Printf("warning: failed to seed room types: %v", err)
			return
		}
		log.Println("RoomTypes seeded")

		now := time.Now().UTC()
		rooms := make([]models.Room, 0, len(roomTypes))
		for i, rt := range roomTypes {
			rooms = append(rooms, models.Room{
				RoomNumber:    fmt.Sprintf("R%d01", i+1),
				Floor:         i + 1,
				Status:        models.RoomReady,
				Images:        datatypes.JSONSlice[string]{"https://placehold.co/600x400?text=Room"},
				RoomTypeID:    rt.ID,
				DateEffective: now,
			})
		}
		if err := db.Omit("RoomType").Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
			return
		}
		log.Println("Rooms seeded")
	}
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN(cfg Config) (string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	), nil
}

func resolvePostgresDSN(cfg Config) string {
	if raw := strings.TrimSpace(cfg.DatabaseURL); raw != "" {
		return raw
	}
	port := cfg.DBPort
	if port == "" || port == "3306" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, port)
}

// Dialector picks the gorm driver for DB_DRIVER.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "mysql":
		dsn, err := resolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(resolvePostgresDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

// Migrate creates or updates the schema, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Staff{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Transaction{},
		&models.Bill{},
	)
}

// OpenSQLite opens a sqlite database with the schema migrated. Used for
// DB_DRIVER=sqlite style local runs and for in-memory test databases.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite has a single writer; one connection keeps transactions serialized.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormLogLevel(cfg.LogLevel),
			Colorful:      !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		if cfg.DBDriver == "sqlite" {
			sqlDB.SetMaxOpenConns(1)
		} else {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	} else {
		log.Printf("info: cannot get raw sql.DB: %v", err)
	}

	DB = db

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.SeedDB {
		SeedDatabase(db)
	}
	return db, nil
}
