package tenant

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/open2agenda/booking-service/internal/domain"
	"github.com/open2agenda/booking-service/pkg/dbmetrics"
	"github.com/open2agenda/booking-service/pkg/psqlbuilder"
)

const tenantsTable = "tenants"

var tenantColumns = []string{
	"id",
	"subdomain",
	"business_name",
	"owner_email",
	"timezone",
	"bridge_calendar_id",
	"target_calendar_id",
	"service_account_json",
	"email_service_id",
	"email_template_id",
	"email_public_key",
	"services_json",
	"created_at",
	"updated_at",
}

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID returns the tenant with the given id.
func (r *Repository) GetByID(ctx context.Context, tenantID string) (domain.Tenant, error) {
	query, args, err := psqlbuilder.Select(tenantColumns...).
		From(tenantsTable).
		Where("id = ?", tenantID).
		ToSql()
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	row := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...)

	return scanTenant(row)
}

// GetBySubdomain returns the tenant serving the given widget subdomain.
func (r *Repository) GetBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error) {
	query, args, err := psqlbuilder.Select(tenantColumns...).
		From(tenantsTable).
		Where("subdomain = ?", subdomain).
		ToSql()
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	row := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...)

	return scanTenant(row)
}

// List returns all tenants ordered by subdomain.
func (r *Repository) List(ctx context.Context) ([]domain.Tenant, error) {
	query, args, err := psqlbuilder.Select(tenantColumns...).
		From(tenantsTable).
		OrderBy("subdomain ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	tenants := make([]domain.Tenant, 0)
	for rows.Next() {
		t, err := scanTenantRows(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecQuery, err)
	}

	return tenants, nil
}

// UpdateServices replaces the tenant service set with the given list.
func (r *Repository) UpdateServices(ctx context.Context, tenantID string, services []domain.Service) (domain.Tenant, error) {
	servicesJSON, err := json.Marshal(services)
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: marshal services: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update(tenantsTable).
		Set("services_json", servicesJSON).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", tenantID).
		Suffix("RETURNING " + strings.Join(tenantColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	row := dbmetrics.GetExecutor(ctx, r.db).QueryRowContext(ctx, query, args...)

	return scanTenant(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	t, err := scanTenantRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tenant{}, ErrTenantNotFound
		}
		return domain.Tenant{}, err
	}
	return t, nil
}

func scanTenantRows(row rowScanner) (domain.Tenant, error) {
	var (
		t            domain.Tenant
		servicesJSON []byte
	)

	err := row.Scan(
		&t.ID,
		&t.Subdomain,
		&t.BusinessName,
		&t.OwnerEmail,
		&t.Timezone,
		&t.BridgeCalendarID,
		&t.TargetCalendarID,
		&t.ServiceAccountJSON,
		&t.EmailServiceID,
		&t.EmailTemplateID,
		&t.EmailPublicKey,
		&servicesJSON,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tenant{}, sql.ErrNoRows
		}
		return domain.Tenant{}, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	if len(servicesJSON) > 0 {
		if err := json.Unmarshal(servicesJSON, &t.Services); err != nil {
			return domain.Tenant{}, fmt.Errorf("%w: unmarshal services: %v", ErrScanRow, err)
		}
	}

	return t, nil
}
