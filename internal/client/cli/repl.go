package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isOwner() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Academies(ctx context.Context) error
	Search(ctx context.Context) error
	Academy(ctx context.Context, args []string) error

	Orders(ctx context.Context) error
	Pay(ctx context.Context, args []string) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	AddClass(ctx context.Context) error
	DeleteClass(ctx context.Context, args []string) error
	AddPass(ctx context.Context) error
	DeletePass(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: login, academies, search, academy <id>, exit"
	helpMember    = "Available commands: academies, search, academy <id>, orders, pay <id>, profile, editprofile, logout, exit"
	helpOwner     = "Owner commands: dashboard, approve <item>, reject <item>, addclass, delclass <id>, addpass, delpass <id>"
)

// runREPL reads commands line by line and dispatches them to a, writing
// prompts and errors to out. It returns on EOF or "exit"/"quit". A failing
// command prints its error and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "openmat %s> \n", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}
		if err := dispatch(ctx, a, out, cmd, args); err != nil {
			fmt.Fprintln(out, "Error:", userMessage(err))
		}
	}
}

var errLoginRequired = errors.New("please log in first")

func dispatch(ctx context.Context, a execIface, out io.Writer, cmd string, args []string) error {
	switch cmd {
	case "help":
		switch {
		case a.isOwner():
			fmt.Fprintln(out, helpMember)
			fmt.Fprintln(out, helpOwner)
		case a.isLoggedIn():
			fmt.Fprintln(out, helpMember)
		default:
			fmt.Fprintln(out, helpAnonymous)
		}
		return nil

	case "login":
		return a.Login(ctx)
	case "academies", "a":
		return a.Academies(ctx)
	case "search":
		return a.Search(ctx)
	case "academy":
		return a.Academy(ctx, args)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "orders", "pay", "profile", "editprofile", "dashboard",
			"approve", "reject", "addclass", "delclass", "addpass", "delpass":
			return errLoginRequired
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "orders":
		return a.Orders(ctx)
	case "pay":
		return a.Pay(ctx, args)
	case "profile":
		return a.Profile(ctx)
	case "editprofile":
		return a.EditProfile(ctx)
	case "dashboard":
		return a.Dashboard(ctx)
	case "approve":
		return a.Approve(ctx, args)
	case "reject":
		return a.Reject(ctx, args)
	case "addclass":
		return a.AddClass(ctx)
	case "delclass":
		return a.DeleteClass(ctx, args)
	case "addpass":
		return a.AddPass(ctx)
	case "delpass":
		return a.DeletePass(ctx, args)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}
}
