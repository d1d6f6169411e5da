package domain

// Identity is the authenticated caller as embedded in a verified token.
// Claims are trusted until token expiry; handlers never re-fetch the user to
// authorize a request.
type Identity struct {
	ID    string
	Email string
	Role  Role
}
