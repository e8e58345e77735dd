package migration

import (
	"github.com/smallbiznis/storefront/internal/config"
	gallerydomain "github.com/smallbiznis/storefront/internal/gallery/domain"
	merchantdomain "github.com/smallbiznis/storefront/internal/merchant/domain"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations are written for postgres. Other
		// dialects (local sqlite, mysql) fall back to schema sync.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&merchantdomain.Merchant{},
				&productdomain.Product{},
				&gallerydomain.Gallery{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		return RunMigrations(sqlDB)
	}),
)
