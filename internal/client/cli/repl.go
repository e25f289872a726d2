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
	isLoggedIn() bool
	Login(ctx context.Context) error
	Accounts(ctx context.Context) error
	Send(ctx context.Context, text string) error
	List(ctx context.Context) error
	Who(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	React(ctx context.Context) error
	Watch(ctx context.Context) error
	Avatar(ctx context.Context) error
	SetStatus(ctx context.Context) error
	Join(ctx context.Context, channel string) error
}

// runREPL starts a simple read-eval-print loop for the chat CLI.
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
//	Not logged in:
//	  - help           — show available commands
//	  - login          — pick a username and join the chat
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - send <text>    — post a message to the current channel
//	  - list           — show recent messages
//	  - who            — show who is online and typing
//	  - edit           — edit one of your messages (interactive ID prompt)
//	  - delete         — delete one of your messages (interactive ID prompt)
//	  - react          — toggle an emoji reaction (interactive prompts)
//	  - watch          — stream live events until interrupted
//	  - accounts       — show accounts saved on this device
//	  - avatar         — upload an avatar image
//	  - status         — set your status text
//	  - join <channel> — switch to another channel
//	  - login          — switch to another saved account
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("chat %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: send, (l)ist, who, edit, delete, react, watch, accounts, avatar, status, join, login, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "accounts":
			_ = a.Accounts(ctx)

		case "send":
			_ = a.Send(ctx, strings.Join(args, " "))

		case "l", "list":
			_ = a.List(ctx)

		case "who":
			_ = a.Who(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "react":
			_ = a.React(ctx)

		case "watch":
			_ = a.Watch(ctx)

		case "avatar":
			_ = a.Avatar(ctx)

		case "status":
			_ = a.SetStatus(ctx)

		case "join":
			if len(args) == 0 {
				printlnFn("Usage: join <channel>")
				continue
			}
			_ = a.Join(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
