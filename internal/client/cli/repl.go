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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	ChangeEmail(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Deactivate(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	Fetch(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create an account
//	  - login                authenticate
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - me                   show the profile
//	  - email | passwd       change email or password
//	  - deactivate           deactivate the account
//	  - unregister           delete the account and all its items
//	  - add                  create an item
//	  - (l)ist [skip] [n]    list items
//	  - show <id>            show one item
//	  - edit <id>            change title or description
//	  - delete <id>          delete an item
//	  - attach <id> <path>   upload a file as the item's attachment
//	  - fetch <id>           download the item's attachment
//	  - logout               forget the access token
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ik %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		report(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: me, email, passwd, deactivate, unregister, add, (l)ist, show, edit, delete, attach, fetch, logout, exit")
		} else {
			printlnFn("Available commands: register, login, exit")
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !isKnown(cmd) {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "email":
		return a.ChangeEmail(ctx)
	case "passwd":
		return a.ChangePassword(ctx)
	case "deactivate":
		return a.Deactivate(ctx)
	case "unregister":
		return a.DeleteAccount(ctx)
	case "add":
		return a.Add(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "attach":
		return a.Attach(ctx, args)
	case "fetch":
		return a.Fetch(ctx, args)
	}
	return nil
}

var loggedInCommands = map[string]struct{}{
	"logout": {}, "me": {}, "email": {}, "passwd": {}, "deactivate": {}, "unregister": {},
	"add": {}, "l": {}, "list": {}, "show": {}, "edit": {}, "delete": {}, "attach": {}, "fetch": {},
}

func isKnown(cmd string) bool {
	_, ok := loggedInCommands[cmd]
	return ok
}

func report(err error) {
	if err != nil {
		printlnFn("error:", err)
	}
}
