package constant

import "time"

const (
	QUERY_TIMEOUT_DURATION = 10 * time.Second
	PING_TIMEOUT_DURATION  = 3 * time.Second
)

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

const (
	// Context key holding the verified token claims.
	CTX_AUTH_USER = "user"
)

const (
	ERR_ACCESS_TOKEN_REQUIRED = "Access token required"
	ERR_INVALID_TOKEN         = "Invalid token"
	ERR_INVALID_CREDENTIALS   = "Invalid credentials"
	ERR_DATABASE_UNAVAILABLE  = "Database unavailable. Please check database network access settings."
	ERR_DATABASE_GUIDANCE     = "Your server's IP address needs to be allowed by the database host."
)
