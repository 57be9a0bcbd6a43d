package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Accept(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	Review(ctx context.Context, appointmentID int64) error
	StartChat(ctx context.Context, appointmentID int64) error
	Send(ctx context.Context, roomID int64) error
}

const (
	helpAnonymous = "Available commands: open <path>, login, register, exit"
	helpLoggedIn  = "Available commands: open <path>, whoami, profile, password, accept <id>, reject <id>, " +
		"complete <id>, review <id>, chat <appointment id>, send <room id>, logout, exit"
	helpPaths = "Pages: /, /doctors, /doctors/<id>, /dashboard, /profile, /book-appointment/<doctor id>, " +
		"/appointments, /doctor/profile, /chat/<room id>, /admin"
)

// runREPL starts a read–eval–print loop over reader.
//
// The first token of a line is the command; commands that act on an object
// take its numeric id as the second token. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures as notifications.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "medbook (%s)> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		// withID runs fn with the id argument, or prints usage.
		withID := func(fn func(context.Context, int64) error) {
			if len(args) == 0 {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				return
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				fmt.Fprintf(w, "Invalid id: %s\n", args[0])
				return
			}
			_ = fn(ctx, id)
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}
			fmt.Fprintln(w, helpPaths)

		case "open", "o":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "password":
			_ = a.ChangePassword(ctx)

		case "accept":
			withID(a.Accept)

		case "reject":
			withID(a.Reject)

		case "complete":
			withID(a.Complete)

		case "review":
			withID(a.Review)

		case "chat":
			withID(a.StartChat)

		case "send":
			withID(a.Send)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
