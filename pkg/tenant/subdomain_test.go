package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/budyapp/storefront/pkg/tenant"
)

func TestExtractSubdomain(t *testing.T) {
	t.Parallel()

	const rootDomain = "budy.app"

	cases := []struct {
		name string
		host string
		want string
		ok   bool
	}{
		{"tenant subdomain", "weed365.budy.app", "weed365", true},
		{"tenant subdomain with port", "weed365.budy.app:443", "weed365", true},
		{"nested subdomain kept joined", "eu.weed365.budy.app", "eu.weed365", true},
		{"case preserved", "Weed365.budy.app", "Weed365", true},
		{"reserved api", "api.budy.app", "", false},
		{"reserved admin", "admin.budy.app", "", false},
		{"reserved www", "www.budy.app", "", false},
		{"localhost with port", "localhost:5173", "", false},
		{"loopback address", "127.0.0.1:8080", "", false},
		{"wrong root domain", "shop.other.com", "", false},
		{"bare root domain", "budy.app", "", false},
		{"single label", "budy", "", false},
		{"empty host", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tenant.ExtractSubdomain(tc.host, rootDomain)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
