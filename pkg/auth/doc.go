// Package auth provides password hashing and stateless session tokens.
//
// # Overview
//
// Two components: a bcrypt password hasher used at registration and login,
// and a JWT token manager that issues and verifies signed, time-bounded
// session claims. The server keeps no session state; a token is valid iff
// its signature checks out and it has not expired.
//
// # Password Hashing
//
//	hasher := auth.NewPasswordHasher(auth.DefaultBcryptCost)
//	digest, err := hasher.Hash(password)
//	ok, err := hasher.Verify(password, digest)
//
// Verify returns (false, nil) on mismatch; a non-nil error always means an
// internal failure, never bad credentials.
//
// # Tokens
//
//	tokens := auth.NewTokenManager(secret, 24*time.Hour)
//	token, err := tokens.Issue(user.ID, user.Email)
//	claims, err := tokens.Verify(token)
//
// Verification failures classify into ErrTokenMalformed, ErrTokenSignature,
// and ErrTokenExpired, checkable with errors.Is.
//
// # Related Packages
//
//   - pkg/middleware: bearer-token extraction and request-context injection
package auth
