// Package cli provides the interactive OpenMat command-line client.
//
// It wires the session, the API services, and a REPL that replaces the web
// pages: browsing academies, order history, the profile and the owner
// dashboard. A background watcher probes the API and shows online/offline
// in the prompt; another reports when the session is dropped by the server.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
