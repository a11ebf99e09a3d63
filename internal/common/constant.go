package common

// AuthHeaderName is the HTTP header carrying the admin bearer token.
const AuthHeaderName = "Authorization"

// IdempotencyKeyHeaderName guards mutating invoice calls against
// double-apply after an ambiguous response.
const IdempotencyKeyHeaderName = "Idempotency-Key"
