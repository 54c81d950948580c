package tenant

import (
	"github.com/open2agenda/booking-service/pkg/dbmetrics"
)

// DBExecutor executes queries against the database or the
// transaction currently carried in the context.
type DBExecutor = dbmetrics.DBExecutor
