package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/datasources/mysql"
	"github.com/verdantly/wellness-api/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	// Setup logger
	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	if err := run(ctx); err != nil {
		logger.ErrorContext(ctx, "reminder generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := domain.LoggerFromContext(ctx)

	mysqlURI := os.Getenv("MYSQL_URI")
	if mysqlURI == "" {
		return fmt.Errorf("MYSQL_URI environment variable is required")
	}

	db, err := mysql.Connect(ctx, mysqlURI)
	if err != nil {
		return fmt.Errorf("connecting to MySQL: %w", err)
	}
	defer func() { _ = db.Close() }()

	dataset := mysql.New(db)

	reminderCmd := command.NewGetDailyReminder(dataset, dataset, dataset, dataset)
	generateCmd := command.NewGenerateReminders(dataset, reminderCmd)

	result, err := generateCmd.Execute(ctx, command.Empty{})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "reminder generation completed",
		"users_processed", result.UsersProcessed,
		"reminders_generated", result.Generated)
	return nil
}
