// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/Lukiyanto/cisaroni-news/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// GetDBConnection gets a connection to the database specified by env.
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
	return getDB(dsn)
}

func getDB(connectionString string) (db *gorm.DB, err error) {
	return gorm.Open(postgres.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// DatabaseSetupAndMigration wires the explicit join tables and migrates the
// whole schema. Called once at startup and for every test database.
func DatabaseSetupAndMigration(db *gorm.DB) {
	var err error

	err = db.SetupJoinTable(&model.Article{}, "Tags", &model.ArticleTag{})
	if err != nil {
		panic("failed to build many2many relationship between Articles and Tags")
	}

	err = db.SetupJoinTable(&model.Tag{}, "Articles", &model.ArticleTag{})
	if err != nil {
		panic("failed to build many2many relationship between Tags and Articles")
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Article{},
		&model.Comment{},
		&model.ArticleView{},
		&model.Media{},
		&model.NewsletterSubscriber{},
	)
	if err != nil {
		panic("failed to migrate database: " + err.Error())
	}
}

// CreateTempDB creates a throwaway in-memory sqlite database migrated to the
// full schema, note that this function should only be called in a testing
// environment with test state manager testing.T. The database lives for as
// long as its connection pool, so it is dropped automatically when the test
// binary exits; the named DSN keeps every test isolated while still allowing
// more than one connection from the pool.
func CreateTempDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("cannot open temp DB %s: %v", dbName, err)
	}
	DatabaseSetupAndMigration(db)

	t.Cleanup(func() {
		// Proactively close the connections instead of deferring to GC.
		conn, _ := db.DB()
		conn.Close()
	})

	return db
}
