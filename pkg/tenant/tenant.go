package tenant

import "context"

// Info represents a resolved storefront tenant. It is immutable once
// resolved for a request.
type Info struct {
	ID   string `json:"id" bson:"tenantId"`
	Name string `json:"name" bson:"name"`
	// NormalizedName is the uppercase subdomain used as the lookup key.
	NormalizedName string `json:"normalizedName" bson:"normalizedName"`
}

// Provider loads tenant information for a subdomain from a data source.
type Provider interface {
	// Resolve looks up the tenant whose normalized name matches the
	// subdomain, excluding soft-deleted and disabled tenants. Any
	// lookup failure, including not-found, yields ErrTenantNotFound;
	// the caller decides whether a missing tenant is fatal.
	Resolve(ctx context.Context, subdomain string) (*Info, error)
}

// ProviderFunc is an adapter to allow ordinary functions as Providers.
type ProviderFunc func(ctx context.Context, subdomain string) (*Info, error)

// Resolve calls the function.
func (f ProviderFunc) Resolve(ctx context.Context, subdomain string) (*Info, error) {
	return f(ctx, subdomain)
}
