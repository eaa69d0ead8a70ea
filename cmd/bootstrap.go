package cmd

import (
	"fmt"
	"log"

	"table-booking/internal/data/repository"
	"table-booking/internal/usecase"
	"table-booking/pkg/database"
	"table-booking/pkg/notify"
	"table-booking/pkg/utils"

	"go.uber.org/zap"
)

// runtime is what every subcommand needs: config, logger and a database pool
type runtime struct {
	config *utils.Config
	logger *zap.Logger
	db     database.PgxIface
	repo   *repository.Repository
	clock  usecase.Clock
}

func bootstrap() (*runtime, func(), error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	loc, err := config.App.Location()
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("host", config.Database.Host),
		zap.String("name", config.Database.Name),
		zap.String("timezone", loc.String()),
	)

	rt := &runtime{
		config: config,
		logger: logger,
		db:     db,
		repo:   repository.NewRepository(db, logger),
		clock:  usecase.ClockIn(loc),
	}
	cleanup := func() {
		db.Close()
		_ = logger.Sync()
	}
	return rt, cleanup, nil
}

// newNotifier connects to the broker when AMQP_URL is set and falls back to logging otherwise
func newNotifier(config utils.BrokerConfig, logger *zap.Logger) notify.Notifier {
	if config.URL == "" {
		logger.Info("AMQP_URL not set, booking events go to the log")
		return notify.NewLogNotifier(logger)
	}

	n, err := notify.NewAMQPNotifier(config.URL, config.Exchange, logger)
	if err != nil {
		logger.Warn("Failed to connect to broker, booking events go to the log", zap.Error(err))
		return notify.NewLogNotifier(logger)
	}

	logger.Info("Publishing booking events", zap.String("exchange", config.Exchange))
	return n
}
