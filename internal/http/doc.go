// Package http provides HTTP handlers and middleware for the assistant API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"email","password"}.
//     Response: {"token","expires_at"} with the token also surfaced via the
//     `X-Session-Token` header and a `session_token` cookie.
//   - DELETE /sessions/current: revokes the current session token extracted
//     from the Authorization header or session cookie. Returns 204 No Content
//     and clears the cookie.
//   - POST /commands/preview, POST /commands/execute: the natural language
//     pipeline. Both exchange the `commandRequest` and `previewDTO` payloads
//     defined in command_handler.go; execute additionally reports the created
//     record.
//   - GET /people, POST /people, GET /people/{id}, PUT /people/{id},
//     DELETE /people/{id}: staff directory endpoints exchanging the
//     `personDTO` payload defined in person_handler.go. Listing and reads are
//     available to any authenticated principal while mutations require admin
//     privileges.
//   - GET /audit: recent command execution attempts, newest first, exchanging
//     the `auditEntryDTO` payload defined in audit_handler.go.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
