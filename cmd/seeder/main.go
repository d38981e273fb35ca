package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/app"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

const commandTimeout = 2 * time.Minute

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Manage the storefront product catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "import",
			Short: "Replace the catalog with the generated product set",
			RunE: withSeedService(func(ctx context.Context, svc service.SeedService) error {
				result, err := svc.SeedCatalog(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("Imported %d products in %d batches (admin %s)\n", result.ProductsCreated, result.Batches, result.AdminEmail)
				models := make([]string, 0, len(result.ByModel))
				for model := range result.ByModel {
					models = append(models, model)
				}
				sort.Strings(models)
				for _, model := range models {
					fmt.Printf("- %s: %d variants\n", model, result.ByModel[model])
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every product",
			RunE: withSeedService(func(ctx context.Context, svc service.SeedService) error {
				result, err := svc.ClearCatalog(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("Deleted %d products\n", result.DeletedCount)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print catalog and admin status as JSON",
			RunE: withSeedService(func(ctx context.Context, svc service.SeedService) error {
				status, err := svc.GetSeedStatus(ctx)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}),
		},
	)

	return root
}

func withSeedService(run func(ctx context.Context, svc service.SeedService) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		config := config.CreateNewConfig()
		app.ConfigureLogger(config)

		if config.MongoDBConfig.URI == "" {
			return fmt.Errorf("MONGO_URI is not set")
		}

		db, err := mongodb.ConnectToMongoDB(config.MongoDBConfig.URI, config.MongoDBConfig.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer func(db *mongo.Database) {
			if err := mongodb.Disconnect(db); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from database")
			}
		}(db)

		publisher := kafka.CreateEventPublisher(config)
		defer publisher.Close()

		svc := service.CreateSeedService(
			repository.CreateNewMongoDBProductRepository(db),
			repository.CreateNewMongoDBUserRepository(db),
			publisher,
			config,
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		return run(log.Logger.WithContext(ctx), svc)
	}
}
