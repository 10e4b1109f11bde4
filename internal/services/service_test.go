package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/probata/estateledger-backend/internal/logger"
	"github.com/probata/estateledger-backend/internal/repos"
)

// The models carry postgres uuid defaults that sqlite's DDL grammar
// rejects, so the test store is created from explicit statements. The
// services always assign IDs themselves, so the defaults are never used.
var testSchema = []string{
	`CREATE TABLE heir (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		middle_initial TEXT,
		last_name TEXT NOT NULL,
		suffix TEXT,
		relation TEXT,
		email TEXT,
		phone TEXT,
		street_address_1 TEXT,
		street_address_2 TEXT,
		city TEXT,
		state TEXT,
		zip_code TEXT,
		target_percentage NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
	`CREATE TABLE asset_information (
		id TEXT PRIMARY KEY,
		asset_name TEXT NOT NULL,
		asset_category TEXT NOT NULL,
		account_number TEXT,
		financial_institution TEXT,
		account_owner TEXT,
		current_value NUMERIC NOT NULL DEFAULT 0,
		cost_basis NUMERIC,
		acquisition_date DATETIME,
		is_probate INTEGER NOT NULL DEFAULT 0,
		sold INTEGER NOT NULL DEFAULT 0,
		asset_location TEXT,
		asset_contact_name TEXT,
		asset_contact_number TEXT,
		asset_contact_email TEXT,
		notes TEXT,
		account_status TEXT NOT NULL DEFAULT 'OPEN',
		account_plan TEXT NOT NULL DEFAULT 'INDIVIDUAL',
		task_id TEXT,
		metadata TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
	`CREATE TABLE distribution_share (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL REFERENCES asset_information(id) ON DELETE CASCADE,
		heir_id TEXT NOT NULL REFERENCES heir(id) ON DELETE RESTRICT,
		share_of_distribution NUMERIC NOT NULL,
		distribution_type TEXT NOT NULL DEFAULT 'default',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE (asset_id, heir_id)
	)`,
	`CREATE TABLE liability (
		id TEXT PRIMARY KEY,
		liability_name TEXT NOT NULL,
		liability_category TEXT NOT NULL,
		amount NUMERIC NOT NULL DEFAULT 0,
		financial_institution TEXT,
		due_date DATETIME,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME
	)`,
}

type testEnv struct {
	db        *gorm.DB
	assets    AssetService
	heirs     HeirService
	liability LiabilityService
	summary   SummaryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	dsn := "file:" + filepath.Join(t.TempDir(), "ledger.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection serializes transactions; the services still interleave.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("schema: %v", err)
		}
	}

	heirRepo := repos.NewHeirRepo(db, log)
	assetRepo := repos.NewAssetRepo(db, log)
	shareRepo := repos.NewDistributionShareRepo(db, log)
	liabilityRepo := repos.NewLiabilityRepo(db, log)

	return &testEnv{
		db:        db,
		assets:    NewAssetService(db, log, assetRepo, shareRepo, heirRepo, nil),
		heirs:     NewHeirService(db, log, heirRepo, shareRepo),
		liability: NewLiabilityService(db, log, liabilityRepo),
		summary:   NewSummaryService(db, log, assetRepo, shareRepo, liabilityRepo, nil),
	}
}
