// Package client contains the CLI's transport to the aura server and the
// bootstrap of its local SQLite database.
//
// # Overview
//
//  1. Client is the transport-agnostic contract used by the session manager
//     and the transfer helpers.
//  2. GRPCClient implements it over gRPC with the JSON codec. A unary
//     interceptor attaches "authorization: Bearer <token>" taken from the
//     installed token source, so the session manager stays the single owner
//     of the token.
//  3. InitDatabase and RunMigrations open the local database and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// gRPC statuses come back as *ServerError carrying the code and the
// server's message. Its Err field is one of ErrUnauthorized,
// ErrUnavailable, ErrNotFound or ErrInvalidInput where the code maps to one,
// so errors.Is works on the result. Failures that never reached the server
// are reported as ErrUnavailable.
package client
