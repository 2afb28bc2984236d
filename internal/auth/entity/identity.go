package entity

// Identity is the record produced by a successful credential check. It is
// owned by the identity source and never persisted by this service; its only
// job here is to be embedded into token claims.
type Identity struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}
