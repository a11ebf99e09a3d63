package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Open(ctx context.Context) error
	Show(ctx context.Context) error
	Pay(ctx context.Context) error
	Cancel(ctx context.Context) error
	Document(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the BillGate CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	No view unlocked:
//	  - help           — show available commands
//	  - open           — open a shared view (token + PIN)
//	  - exit | quit    — leave the program
//
//	View unlocked:
//	  - help           — show available commands
//	  - show           — print the unlocked snapshot
//	  - pay            — mark an invoice paid
//	  - cancel         — void an issued invoice
//	  - doc            — fetch an invoice PDF document
//	  - logout         — drop the cached session
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bg> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn("Available commands: show, pay, cancel, doc, logout, exit")
			} else {
				printlnFn("Available commands: open, exit")
			}

		case "open", "unlock":
			_ = a.Open(ctx)

		case "show":
			_ = a.Show(ctx)

		case "pay":
			_ = a.Pay(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "doc":
			_ = a.Document(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
