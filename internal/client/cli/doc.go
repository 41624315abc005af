// Package cli provides the interactive itemkeeper command-line client.
//
// It wires configuration, the gRPC API client and a REPL. A background
// watcher pings the server and flips the prompt between online and offline.
//
// Key features:
//   - Register / Login / Logout
//   - Profile: show, change email or password, deactivate, delete
//   - Items: add, list (with paging), show, edit, delete
//   - Attachments: upload a local file to an item, fetch it back
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
