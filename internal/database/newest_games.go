package database

import (
	"fmt"

	"gorm.io/gorm"
)

// NewestGamesRoutine is the name of the stored routine behind the newest-games listing.
const NewestGamesRoutine = "GetNewestGames"

// newestGamesOrder is shared by every dialect so the listing is identical across stores.
const newestGamesOrder = `ORDER BY release_date DESC NULLS LAST, created_at DESC, id DESC`

// installNewestGames (re)creates the routine. Postgres gets a SQL function;
// sqlite has no stored routines, so it gets a view of the same name.
func installNewestGames(db *gorm.DB, limit int) error {
	switch db.Dialector.Name() {
	case "postgres":
		return db.Exec(fmt.Sprintf(`CREATE OR REPLACE FUNCTION %q() RETURNS SETOF games AS $$
	SELECT * FROM games %s LIMIT %d
$$ LANGUAGE sql STABLE`, NewestGamesRoutine, newestGamesOrder, limit)).Error
	case "sqlite":
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(fmt.Sprintf(`DROP VIEW IF EXISTS %q`, NewestGamesRoutine)).Error; err != nil {
				return err
			}
			return tx.Exec(fmt.Sprintf(`CREATE VIEW %q AS SELECT * FROM games %s LIMIT %d`,
				NewestGamesRoutine, newestGamesOrder, limit)).Error
		})
	default:
		return fmt.Errorf("no %s routine for dialect %q", NewestGamesRoutine, db.Dialector.Name())
	}
}

// NewestGamesQuery returns the statement that invokes the routine on db's dialect.
func NewestGamesQuery(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return fmt.Sprintf(`SELECT * FROM %q()`, NewestGamesRoutine)
	}
	return fmt.Sprintf(`SELECT * FROM %q`, NewestGamesRoutine)
}
