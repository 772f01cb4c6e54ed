package common

// AuthHeaderName is the HTTP header carrying the access token.
const AuthHeaderName = "Authorization"

// BearerPrefix prefixes the token value in AuthHeaderName.
const BearerPrefix = "Bearer "
