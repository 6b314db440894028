package model

import "time"

// AdminPin is one outstanding login challenge. The issuer keeps at most one
// live row per email by deleting older rows before inserting.
type AdminPin struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Pin       string    `json:"-"` // never JSON-encode
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionBootstrap is the one-time artifact returned after a successful PIN
// verification. The client exchanges the token at /auth/exchange for a
// session token; role membership is checked there, not here.
type SessionBootstrap struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
