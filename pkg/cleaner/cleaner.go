package cleaner

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sweep drops rating rows whose apartment is gone. The FK cascades on
// delete, so this only ever matches rows written before the constraint
// existed, but the sweep keeps old databases honest.
func Sweep(pool *pgxpool.Pool) {
	query := `DELETE FROM rating WHERE NOT EXISTS (
		SELECT 1 FROM apartment WHERE apartment.id = rating.apartment_id
	)`
	command, err := pool.Exec(context.Background(), query)
	if err != nil {
		log.Printf("ERROR|cleaner.Sweep:%s", err.Error())
		return
	}
	if command.RowsAffected() > 0 {
		log.Printf("cleaner.Sweep: removed %d orphaned ratings", command.RowsAffected())
	}
}
