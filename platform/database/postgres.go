package database

import (
	"context"
	"fmt"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/donlinch/archdon-sub001/platform/config"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

func PostgreSQLConnection(cfg config.DBConfig) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.User,
		Addr:     cfg.Addr,
		Password: cfg.Password,
		Database: cfg.Name,
	})
}

// Migrate creates the lobby tables when they are missing.
func Migrate(ctx context.Context, db *pg.DB) error {
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	for _, model := range []interface{}{(*models.User)(nil), (*models.Game)(nil), (*models.Player)(nil)} {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
