// Package tenant resolves storefront tenants from request hostnames.
//
// Every storefront lives on a subdomain of the configured root domain
// ("weed365.budy.app" is the WEED365 tenant). ExtractSubdomain pulls
// the candidate subdomain out of a Host header, filtering loopback
// hosts, foreign domains and reserved operational names; a Provider
// then looks the tenant up by its normalized (uppercase) name.
//
// Two providers ship with the package: HTTPProvider queries the backend
// tenant-lookup endpoint and MongoProvider queries the tenants
// collection directly. Either can be wrapped in a CachedProvider with
// an in-memory or Redis cache, since tenant records change rarely but
// are read on every request.
//
// All lookup failures resolve to ErrTenantNotFound rather than
// distinct errors; what a missing tenant means (404 or a development
// fallback) is the caller's decision.
package tenant
