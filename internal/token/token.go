// Package token provides the access/refresh token store backing authenticated
// requests. The store is the single source of truth for the current token
// pair; expiry is never tracked client-side and is discovered only when the
// backend rejects a token.
package token

// Source holds the current access/refresh token pair.
type Source interface {
	// AccessToken returns the stored access token, or "" if absent.
	AccessToken() string
	// SetAccessToken stores a new access token.
	SetAccessToken(tok string)
	// RefreshToken returns the stored refresh token, or "" if absent.
	RefreshToken() string
	// SetRefreshToken stores a new refresh token.
	SetRefreshToken(tok string)
	// Clear removes both tokens.
	Clear()
}
