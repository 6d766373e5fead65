package domain

// Identity is the authenticated caller as carried in the JWT claims.
type Identity struct {
	UserID   uint64
	Username string
	Email    string
}
