package migration

import (
	"strings"

	authdomain "github.com/swiftprep/swiftprep/internal/auth/domain"
	catalogdomain "github.com/swiftprep/swiftprep/internal/catalog/domain"
	"github.com/swiftprep/swiftprep/internal/config"
	discussiondomain "github.com/swiftprep/swiftprep/internal/discussion/domain"
	"github.com/swiftprep/swiftprep/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if strings.EqualFold(cfg.DBType, "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs are dev setups; let gorm own the schema.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&catalogdomain.Mentor{},
				&catalogdomain.Video{},
				&discussiondomain.Comment{},
				&discussiondomain.Reply{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureSampleCatalog(conn)
	}),
)
