package tenant

import "strings"

// reservedSubdomains are operational hostnames that never map to a
// storefront tenant.
var reservedSubdomains = map[string]struct{}{
	"api":       {},
	"admin":     {},
	"objectbox": {},
	"portainer": {},
	"n8n":       {},
	"www":       {},
	"shop":      {},
	"mail":      {},
	"ftp":       {},
	"sync":      {},
}

// ExtractSubdomain extracts the tenant subdomain from a Host header
// value. The host must have at least three labels whose final two equal
// rootDomain ("weed365.budy.app" with root "budy.app" yields "weed365");
// nested subdomains are kept joined ("a.b.budy.app" yields "a.b"). It
// returns false for loopback hosts, hosts outside rootDomain and
// reserved subdomains, leaving the fallback decision to the caller. The
// candidate is returned unchanged; case normalization happens at lookup.
func ExtractSubdomain(host, rootDomain string) (string, bool) {
	hostname := host
	if idx := strings.LastIndex(hostname, ":"); idx != -1 {
		hostname = hostname[:idx]
	}

	if hostname == "localhost" || hostname == "127.0.0.1" {
		return "", false
	}

	parts := strings.Split(hostname, ".")
	if len(parts) < 3 {
		return "", false
	}
	if strings.Join(parts[len(parts)-2:], ".") != rootDomain {
		return "", false
	}

	subdomain := strings.Join(parts[:len(parts)-2], ".")
	if _, reserved := reservedSubdomains[subdomain]; reserved {
		return "", false
	}

	return subdomain, true
}
