// Package client contains the client-side building blocks that talk to the
// OpenMat REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): login,
//     profile, academies, orders and the owner endpoints.
//  2. A concrete REST implementation (see RESTClient) on top of
//     httpclient.Client. It decodes every response into typed records and maps
//     transport failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI:
//     an SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Rejected logins
// return *AuthenticationError carrying the server message verbatim; payloads
// that do not match the expected shape return *SchemaError. The underlying
// *httpclient.HTTPError stays reachable through errors.As.
//
// RESTClient never retries.
package client
