package common

// TokenTypeBearer is the token_type reported with every issued token pair.
const TokenTypeBearer = "bearer"

// AuthorizationHeaderName carries "Bearer <access token>" on protected calls.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed back so clients can correlate log lines.
const RequestIDHeaderName = "X-Request-Id"
