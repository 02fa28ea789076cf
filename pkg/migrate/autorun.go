package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/config"
	"github.com/angelmondragon/stonefront-backend/pkg/db"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&models.Category{},
		&models.Product{},
		&models.Variation{},
		&models.ProductReview{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Enquiry{},
		&models.UserDetail{},
		&models.Blog{},
		&models.SitePolicy{},
		&models.ProductCatalogue{},
		&models.Homepage{},
		&models.FooterDetail{},
	}
}

// AutoMigrateModels creates the schema from the gorm models. It backs the
// sqlite driver, where the Postgres SQL migrations do not apply.
func AutoMigrateModels(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db is required")
	}
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	return nil
}

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	meta := map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver}
	ctx = logg.WithFields(ctx, meta)

	if cfg.DB.Driver == db.DriverSQLite {
		logg.Info(ctx, "running model auto-migration (dev auto-run)")
		return AutoMigrateModels(client.DB())
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running Goose migrations (dev auto-run)")
	if err := Run(ctx, sqlDB, "", "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
