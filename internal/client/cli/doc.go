// Package cli provides the interactive chatlite command-line client.
//
// It wires configuration, the device identity file, the HTTP API client, and
// an interactive REPL. Typical flow: pick a username, start a background
// presence watcher, and execute user commands.
//
// Key features:
//   - Login and switch between accounts saved on this device
//   - Send / edit / delete messages and toggle emoji reactions
//   - List recent messages, see who is online and typing
//   - Watch the live event feed over WebSocket
//   - Upload an avatar and set a status line
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartPresenceWatcher, and runREPL for details.
package cli
