package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be resolved,
	// whether the record is missing, deleted, disabled or the lookup
	// itself failed.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
