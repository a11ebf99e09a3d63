// Package cli provides the interactive BillGate command-line client.
//
// It wires configuration, the local session database, the API client, and an
// interactive REPL over a shared project/invoice/quote/hosting view. Typical
// flow: open a share link (token + PIN, cache-first), inspect the snapshot,
// and run invoice commands against the server.
//
// Key features:
//   - Open a shared view (cached session first, PIN verification on a miss)
//   - Show the unlocked snapshot
//   - Pay / Cancel invoices with explicit sync state on network failures
//   - Download invoice PDF documents via presigned URLs
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
