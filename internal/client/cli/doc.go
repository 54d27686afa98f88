// Package cli provides the interactive command-line client for the auth
// server.
//
// It wires configuration, the HTTP API client and a small REPL. The session
// (access and refresh tokens) lives in memory only; an expired access token
// is refreshed transparently once per command.
//
// Commands:
//   - register, login, logout
//   - me: show the current profile
//   - passwd: change password
//   - refresh: mint a new access token
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
