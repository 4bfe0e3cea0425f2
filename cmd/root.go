package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/memstore"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/repository"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/database"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "rancho",
	Short: "Booking pricing and capacity reservation service for the ranch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seasonCmd())
	rootCmd.AddCommand(quoteCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// deps holds what every storage-backed command needs.
type deps struct {
	config *utils.Config
	logger *zap.Logger
	repo   *repository.Repository
	close  func()
}

// bootstrap loads config, builds the logger and opens the configured store.
func bootstrap(ctx context.Context) (*deps, error) {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	rt := &deps{config: config, logger: logger, close: func() { _ = logger.Sync() }}

	switch config.App.StorageDriver {
	case utils.StorageDriverMemory:
		logger.Warn("Using in-memory storage, bookings are lost on restart")
		rt.repo = memstore.NewRepository(memstore.New(logger))

	default:
		// Connect to database
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Error("Failed to connect to database", zap.Error(err))
			return nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			logger.Error("Failed to prepare schema", zap.Error(err))
			return nil, err
		}
		logger.Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.String("name", config.Database.Name),
		)

		rt.repo = repository.NewRepository(db, logger)
		rt.close = func() {
			db.Close()
			_ = logger.Sync()
		}
	}

	return rt, nil
}
