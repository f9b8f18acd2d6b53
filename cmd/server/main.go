package main

import (
	"github.com/Lukiyanto/cisaroni-news/file_store"
	. "github.com/Lukiyanto/cisaroni-news/server"
	"github.com/Lukiyanto/cisaroni-news/server/middlewares"
	. "github.com/Lukiyanto/cisaroni-news/utils"
	"github.com/Lukiyanto/cisaroni-news/utils/dotenv"
	"github.com/Lukiyanto/cisaroni-news/utils/flag"
	. "github.com/Lukiyanto/cisaroni-news/utils/log"
)

func cleanup() {
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	flag.Parse()

	// Middlewares
	middlewares.Setup()
	Log.Info("api server initialized")

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatalf("failed to connect database: %v", err)
	}
	DatabaseSetupAndMigration(db)

	files, err := file_store.NewStoreFromEnv()
	if err != nil {
		Log.Fatalf("failed to initialize file store: %v", err)
	}

	router := NewRouter(db, files)

	Log.Info("api server starts up")
	router.Run(":8080")
}
