// Package auth provides password hashing and JWT token issuance for the
// Baby Steps API.
//
// Passwords are hashed with bcrypt. Three token kinds are issued, all
// signed with HMAC-SHA256 and a shared secret:
//
//   - access tokens (7 days) for API authentication
//   - email verification tokens (24 hours)
//   - password reset tokens (30 minutes)
//
// The token type is carried in a "typ" claim so a verification token can
// never be replayed as an access token.
package auth
