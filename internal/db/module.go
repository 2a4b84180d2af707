package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	commissiondomain "github.com/muscleuplabs/muscleup/internal/commission/domain"
	"github.com/muscleuplabs/muscleup/internal/config"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	customerdomain "github.com/muscleuplabs/muscleup/internal/customer/domain"
	membershipdomain "github.com/muscleuplabs/muscleup/internal/membership/domain"
	plandomain "github.com/muscleuplabs/muscleup/internal/plan/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table the engine owns, in migration order.
func Models() []any {
	return []any{
		&customerdomain.Customer{},
		&plandomain.Plan{},
		&coupondomain.Coupon{},
		&commissiondomain.Rule{},
		&membershipdomain.Membership{},
		&membershipdomain.PaymentLine{},
	}
}

func Open(cfg config.Config, log *zap.Logger, lc fx.Lifecycle) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(Models()...); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("driver", cfg.Database.Driver))

	lc.Append(fx.StopHook(func() error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}))

	return gdb, nil
}

var Module = fx.Module("db",
	fx.Provide(Open),
)
