// @title Quiz Room Hub API
// @version 1.0
// @description Classroom, post and quiz backend for teachers and students.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"errors"
	"flag"
	"log"
	"quiz_room_hub/internal/app"
	"quiz_room_hub/internal/config"
	"quiz_room_hub/internal/util"
	"quiz_room_hub/pkg/logger"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on start even in release mode")
	createAdmin := flag.String("create-admin", "", "create a staff account from email:password and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and config file")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly || *createAdmin != ""

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		return
	}

	if *createAdmin != "" {
		email, password, ok := strings.Cut(*createAdmin, ":")
		if !ok {
			log.Fatal("-create-admin expects email:password")
		}
		user, err := application.CreateAdmin(email, password)
		if err != nil {
			var verr *util.ValidationError
			if errors.As(err, &verr) {
				log.Fatalf("Invalid admin account: %s", verr.Error())
			}
			logger.Log.Fatal("Failed to create admin", zap.Error(err))
		}
		logger.Log.Info("Admin created", zap.Uint("id", user.ID), zap.String("email", user.Email))
		return
	}

	application.Run()
}
