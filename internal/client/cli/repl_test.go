package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Accounts(ctx context.Context) error {
	f.calls = append(f.calls, "accounts")
	return nil
}
func (f *fakeExec) Send(ctx context.Context, text string) error {
	f.calls = append(f.calls, "send")
	f.arg = text
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Who(ctx context.Context) error  { f.calls = append(f.calls, "who"); return nil }
func (f *fakeExec) Edit(ctx context.Context) error {
	f.calls = append(f.calls, "edit")
	return nil
}
func (f *fakeExec) Delete(ctx context.Context) error {
	f.calls = append(f.calls, "delete")
	return nil
}
func (f *fakeExec) React(ctx context.Context) error {
	f.calls = append(f.calls, "react")
	return nil
}
func (f *fakeExec) Watch(ctx context.Context) error {
	f.calls = append(f.calls, "watch")
	return nil
}
func (f *fakeExec) Avatar(ctx context.Context) error {
	f.calls = append(f.calls, "avatar")
	return nil
}
func (f *fakeExec) SetStatus(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Join(ctx context.Context, channel string) error {
	f.calls = append(f.calls, "join")
	f.arg = channel
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"send hi there",
		"list",
		"who",
		"accounts",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "send", "list", "who", "accounts"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_SendPassesArgs(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("send hello   world\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if exec.arg != "hello world" {
		t.Fatalf("unexpected send text: %q", exec.arg)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("join\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
