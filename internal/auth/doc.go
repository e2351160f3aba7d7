// Package auth provides authentication and authorization primitives
// for the project management API.
//
// This package implements:
//   - Credential verification against bcrypt password hashes
//   - HS256 bearer token issuance and validation
//   - Principal resolution from a token subject
//   - An ordered route policy table evaluated by the Gate
//
// Every request passes through the Gate before it reaches a handler.
// Storage is reached only through the CredentialStore interface.
package auth
