package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Bills(ctx context.Context) error
	NewBill(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Download(ctx context.Context, id, path string) error
	Render(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
//	Not logged in:
//	  help, register, login, exit
//
//	Logged in:
//	  help, bills, show <id>, download <id> <path>, newbill, logout, exit
//
// After each command the pending route, if any, is rendered. Handler errors
// are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "billed %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: bills, show <id>, download <id> <path>, newbill, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "bills", "l":
			cmdErr = a.Bills(ctx)

		case "newbill", "new":
			cmdErr = a.NewBill(ctx)

		case "show":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, args[0])

		case "download":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: download <id> <path>")
				continue
			}
			cmdErr = a.Download(ctx, args[0], args[1])

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
		if err := a.Render(ctx); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}
