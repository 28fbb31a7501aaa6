// Package sessiontoken generates opaque client session tokens and derives
// their server-side identifiers.
//
// A token is 32 random bytes encoded as lowercase base32 without padding,
// suitable for direct use as a cookie value. The server never persists the
// token itself; it stores only DeriveID(token), the lowercase hex SHA-256
// digest, as the session primary key. Holding the stored identifier is
// therefore useless without the original token.
//
// Usage:
//
//	token, err := sessiontoken.Generate()
//	if err != nil {
//		// entropy failure: abort issuance
//	}
//	id := sessiontoken.DeriveID(token)
package sessiontoken
