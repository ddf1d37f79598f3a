package user

// Principal identifies the authenticated caller as resolved by the
// identity service.
type Principal struct {
	UserID   string
	Username string
}
