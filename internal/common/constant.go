package common

// AuthCookieName is the cookie that carries the access token on every
// authenticated request.
const AuthCookieName = "Authorization"

// BearerScheme prefixes the token inside the auth cookie value.
const BearerScheme = "Bearer"
