// Command seed resets the sample data in MongoDB: it clears the specialists
// and feedbacks collections and inserts the fixed demo records. Exits 0 on
// success, 1 on any database error.
package main

import (
	"context"
	"os"
	"time"

	"carelink/config"
	"carelink/database"
	"carelink/database/seed"
	"carelink/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx)
	if err != nil {
		logger.Error("seed: database connection failed", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	logger.Info("Connected to MongoDB")

	result, err := seed.Run(ctx, client.Database(config.AppConfig.DatabaseName))
	if err != nil {
		logger.Error("seed: failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Sugar().Infof("Sample data seeded successfully! Added %d specialists and %d feedback entries",
		result.Specialists, result.Feedback)
}
