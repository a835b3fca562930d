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
	inSession() bool
	NewArt(ctx context.Context)
	NewCharacter(ctx context.Context)
	AddImage(ctx context.Context, args []string)
	List(ctx context.Context)
	Move(ctx context.Context, args []string)
	Remove(ctx context.Context, args []string)
	Replace(ctx context.Context, args []string)
	Submit(ctx context.Context)
	Delete(ctx context.Context, args []string)
	Edit(ctx context.Context, args []string)
	Import(ctx context.Context, args []string)
}

// runREPL starts a simple read-eval-print loop for the wikipost CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	No session:
//	  - help             — show available commands
//	  - new art|character — start an editing session
//	  - edit art|character <slug> — load an existing post for editing
//	  - import art|characters <dir> — bulk-import an archive directory
//	  - delete <url>     — delete an existing post (asks twice)
//	  - exit | quit      — leave the program
//
//	In a session, additionally:
//	  - thumb|logo|pageimg <path> — attach a singleton image
//	  - img <path>       — append a gallery image
//	  - list             — show the session's assets
//	  - move <n> <delta> — swap a gallery image towards a new position
//	  - remove <n>       — remove a gallery image (asks twice)
//	  - replace <n> <path> — swap in new bytes for an image
//	  - submit           — run the two-phase upload
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to wikipost CLI (type 'help' for commands)")

	for {
		fmt.Printf("wpost %s> ", statusFn())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.inSession() {
				printlnFn("Available commands: thumb, logo, pageimg, img, list, move, remove, replace, submit, exit")
			} else {
				printlnFn("Available commands: new art|character, edit, import, delete, exit")
			}
		case "new":
			if len(args) == 0 {
				printlnFn("Usage: new art|character")
				continue
			}
			switch args[0] {
			case "art":
				a.NewArt(ctx)
			case "character":
				a.NewCharacter(ctx)
			default:
				printlnFn("Unknown post kind:", args[0])
			}
		case "thumb", "logo", "pageimg", "img":
			a.AddImage(ctx, parts)
		case "list":
			a.List(ctx)
		case "move":
			a.Move(ctx, args)
		case "remove":
			a.Remove(ctx, args)
		case "replace":
			a.Replace(ctx, args)
		case "submit":
			a.Submit(ctx)
		case "edit":
			a.Edit(ctx, args)
		case "delete":
			a.Delete(ctx, args)
		case "import":
			a.Import(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
