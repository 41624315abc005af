package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// KeeperClient is the remote API the CLI drives. *client.GRPCClient
// satisfies it.
type KeeperClient interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	IsLoggedIn() bool
	Me(ctx context.Context) (*api.User, error)
	UpdateMe(ctx context.Context, patch models.UserPatch) (*api.User, error)
	DeleteMe(ctx context.Context) error
	CreateItem(ctx context.Context, title string, description *string) (*api.Item, error)
	ListItems(ctx context.Context, offset, limit int) ([]api.Item, error)
	GetItem(ctx context.Context, id string) (*api.Item, error)
	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (*api.Item, error)
	DeleteItem(ctx context.Context, id string) error
	UploadAttachment(ctx context.Context, id string, data []byte) error
	DownloadAttachment(ctx context.Context, id string) ([]byte, error)
	Close() error
}

// newClient is a test seam for dialing the server.
var newClient = func(addr string) (KeeperClient, error) {
	return client.NewItemKeeperClientService(addr)
}

type App struct {
	config *config.Config
	client KeeperClient
	reader *bufio.Reader
	out    io.Writer

	mu       sync.RWMutex
	userName string
	mode     Mode
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := newClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", c.ServerEndpointAddr, err)
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.client.IsLoggedIn()
}

// Run probes the server once, starts the online status watcher and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to itemkeeper CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
// A non-positive interval disables the watcher.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
