package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickbill/quickbill/internal/document/domain"
)

// This migration package ensures QuickBill is fully usable out of the box
// for local and self-hosted environments. The schema is small enough that
// gorm's migrator keeps it current across every supported dialect.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
		if err := conn.AutoMigrate(
			&domain.Document{},
			&domain.LineItem{},
		); err != nil {
			return err
		}
		log.Info("database schema up to date")
		return nil
	}),
)
