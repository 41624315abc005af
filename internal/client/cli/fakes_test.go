package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type fakeClient struct {
	mu sync.Mutex

	loggedIn  bool
	pingErr   error
	pings     int
	closed    bool
	err       error
	user      *api.User
	item      *api.Item
	items     []api.Item
	download  []byte
	gotEmail  string
	gotPass   string
	gotTitle  string
	gotDesc   *string
	gotID     string
	gotOffset int
	gotLimit  int
	gotUser   models.UserPatch
	gotItem   models.ItemPatch
	uploaded  []byte
	calls     []string
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}
func (f *fakeClient) Register(_ context.Context, email, password string) (*api.User, error) {
	f.record("register")
	f.gotEmail, f.gotPass = email, password
	if f.err != nil {
		return nil, f.err
	}
	return &api.User{ID: "u1", Email: email, IsActive: true}, nil
}
func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.record("login")
	f.gotEmail, f.gotPass = email, password
	if f.err != nil {
		return f.err
	}
	f.loggedIn = true
	return nil
}
func (f *fakeClient) Logout()          { f.record("logout"); f.loggedIn = false }
func (f *fakeClient) IsLoggedIn() bool { return f.loggedIn }
func (f *fakeClient) Me(context.Context) (*api.User, error) {
	f.record("me")
	return f.user, f.err
}
func (f *fakeClient) UpdateMe(_ context.Context, patch models.UserPatch) (*api.User, error) {
	f.record("updateMe")
	f.gotUser = patch
	return f.user, f.err
}
func (f *fakeClient) DeleteMe(context.Context) error {
	f.record("deleteMe")
	if f.err == nil {
		f.loggedIn = false
	}
	return f.err
}
func (f *fakeClient) CreateItem(_ context.Context, title string, description *string) (*api.Item, error) {
	f.record("create")
	f.gotTitle, f.gotDesc = title, description
	return f.item, f.err
}
func (f *fakeClient) ListItems(_ context.Context, offset, limit int) ([]api.Item, error) {
	f.record("list")
	f.gotOffset, f.gotLimit = offset, limit
	return f.items, f.err
}
func (f *fakeClient) GetItem(_ context.Context, id string) (*api.Item, error) {
	f.record("get")
	f.gotID = id
	return f.item, f.err
}
func (f *fakeClient) UpdateItem(_ context.Context, id string, patch models.ItemPatch) (*api.Item, error) {
	f.record("update")
	f.gotID, f.gotItem = id, patch
	return f.item, f.err
}
func (f *fakeClient) DeleteItem(_ context.Context, id string) error {
	f.record("delete")
	f.gotID = id
	return f.err
}
func (f *fakeClient) UploadAttachment(_ context.Context, id string, data []byte) error {
	f.record("upload")
	f.gotID, f.uploaded = id, data
	return f.err
}
func (f *fakeClient) DownloadAttachment(_ context.Context, id string) ([]byte, error) {
	f.record("download")
	f.gotID = id
	return f.download, f.err
}
func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) pingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings
}

// newTestApp builds an App around f whose stdin is input and whose output is
// captured in the returned buffer.
func newTestApp(f *fakeClient, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	a := &App{
		config: &config.Config{OnlineCheckInterval: time.Hour, DownloadDir: "downloads"},
		client: f,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}
	return a, out
}

// stubInputs replaces the prompt helpers: text answers are returned in order,
// every password prompt returns password.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline

	next := func() string {
		if len(answers) == 0 {
			return ""
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

func ptr[T any](v T) *T { return &v }
