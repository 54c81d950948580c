package booking

import (
	"context"
	"database/sql"

	"github.com/open2agenda/booking-service/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works both on the
// bare *sql.DB and the metrics-wrapped pool, inside or outside transactions.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
