package session

// Record is the decoded identity and credential payload carried by the
// encrypted session cookie. AccessToken and ExpiresAt are required; a record
// missing either is treated as no session at all.
type Record struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// Valid reports whether the record satisfies the session invariants.
func (r *Record) Valid() bool {
	return r != nil && r.AccessToken != "" && r.ExpiresAt > 0
}
