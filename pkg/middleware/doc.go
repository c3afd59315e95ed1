// Package middleware provides the HTTP authentication gate.
//
// # Overview
//
// Auth verifies the bearer token on gated routes and places the
// resulting claims in the request context. The status contract is
// fixed: no token means 401, an unverifiable token means 403, and the
// response body never reveals why verification failed. BearerToken is
// exported for the one route that maps token failures differently.
//
// # Usage
//
//	gate := middleware.NewAuth(tokens, metrics)
//	protected.Use(gate.Handler)
//
// Handlers downstream read the caller identity with ClaimsFrom:
//
//	claims, ok := middleware.ClaimsFrom(r.Context())
//
// # Related Packages
//
//   - pkg/auth: token issuance and verification
//   - pkg/contextkeys: the context key the claims travel under
package middleware
