package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) call(name string, args ...string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeExec) Register(context.Context) error { return f.call("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.call("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.call("logout")
}
func (f *fakeExec) Me(context.Context) error                      { return f.call("me") }
func (f *fakeExec) ChangeEmail(context.Context) error             { return f.call("email") }
func (f *fakeExec) ChangePassword(context.Context) error          { return f.call("passwd") }
func (f *fakeExec) Deactivate(context.Context) error              { return f.call("deactivate") }
func (f *fakeExec) DeleteAccount(context.Context) error           { return f.call("unregister") }
func (f *fakeExec) Add(context.Context) error                     { return f.call("add") }
func (f *fakeExec) List(_ context.Context, args []string) error   { return f.call("list", args...) }
func (f *fakeExec) Show(_ context.Context, args []string) error   { return f.call("show", args...) }
func (f *fakeExec) Edit(_ context.Context, args []string) error   { return f.call("edit", args...) }
func (f *fakeExec) Delete(_ context.Context, args []string) error { return f.call("delete", args...) }
func (f *fakeExec) Attach(_ context.Context, args []string) error { return f.call("attach", args...) }
func (f *fakeExec) Fetch(_ context.Context, args []string) error  { return f.call("fetch", args...) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"list",
		"login",
		"help",
		"",
		"add",
		"l 10 5",
		"show abc",
		"edit abc",
		"delete abc",
		"attach abc ./f.bin",
		"fetch abc",
		"me",
		"email",
		"passwd",
		"deactivate",
		"unregister",
		"foobar",
		"logout",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "add", "list 10 5", "show abc", "edit abc", "delete abc",
		"attach abc ./f.bin", "fetch abc", "me", "email", "passwd", "deactivate", "unregister", "logout",
	}, exec.calls)

	assert.Contains(t, *printed, "Available commands: register, login, exit")
	assert.Contains(t, *printed, "Please login first")
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "ik status>")
	assert.Equal(t, "Bye!", (*printed)[len(*printed)-1])
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	printed := capturePrints(t)

	exec := &fakeExec{loggedIn: true, failWith: errors.New("not found: Item not found")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("show x\nshow y")))

	assert.Equal(t, []string{"show x", "show y"}, exec.calls)
	assert.Contains(t, *printed, "error: not found: Item not found")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")))

	assert.Empty(t, exec.calls)
}
