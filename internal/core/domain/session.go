package domain

// SessionIdentity is the server-side state bound to a session token: just
// enough to identify the user and gate requests by role. Never persisted to
// the credential file.
type SessionIdentity struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}
