package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the id or subdomain.
	ErrTenantNotFound = errors.New("tenant.repository: tenant not found")

	// ErrBuildQuery is returned when the SQL builder fails.
	ErrBuildQuery = errors.New("tenant.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails.
	ErrExecQuery = errors.New("tenant.repository: failed to execute query")

	// ErrScanRow is returned when result scanning fails.
	ErrScanRow = errors.New("tenant.repository: failed to scan row")
)
