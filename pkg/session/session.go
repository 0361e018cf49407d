package session

// Payload is the sealed cookie payload. It carries everything needed to
// rebuild a session except the access token, which lives only in the
// process-local token cache: a stolen cookie alone never yields a
// usable credential.
type Payload struct {
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Picture      string   `json:"picture,omitempty"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`
	Roles        []string `json:"roles"`
	TenantID     string   `json:"tenantId"`
	RefreshToken string   `json:"refreshToken"`
}

// Data is the runtime view of a session: the cookie payload merged with
// the current cached access token. AccessToken is empty and ExpiresAt
// zero when no valid cached token exists, which tells the caller a
// refresh is needed. This is distinct from "no session".
type Data struct {
	Payload
	AccessToken string
	ExpiresAt   int64
}

// NeedsRefresh reports whether the access token is absent or expires
// within the given buffer in seconds, measured against now (a Unix
// timestamp).
func (d *Data) NeedsRefresh(now, buffer int64) bool {
	return d.AccessToken == "" || d.ExpiresAt-now < buffer
}
