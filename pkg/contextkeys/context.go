package contextkeys

// Key is the type for values stored in gin contexts by middleware.
type Key string

const (
	// AccountIDKey holds the authenticated account id.
	AccountIDKey Key = "accountID"
	// TokenKey holds the raw bearer token of the current request.
	TokenKey Key = "token"
)
