package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/route"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	db, err := database.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	logrus.Info("connected to database")

	// Mongo holds only the best-effort status history; the server runs
	// without it.
	var mongoClient *mongo.Client
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		cancel()
		if err != nil {
			logrus.WithError(err).Warn("failed to connect to mongo, status history disabled")
			mongoClient = nil
		}
	}

	app := gin.Default()
	route.SetupRoute(app, db, mongoClient, cfg)

	logrus.WithField("port", cfg.Port).Info("server running")
	if err := app.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
