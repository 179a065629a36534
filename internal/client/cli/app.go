// Package cli implements the interactive feasctl shell: register and
// log in against a FEAS server, inspect the authenticated profile, and
// drop the session token again.
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/feas-project/feas-server/internal/client/api"
	"github.com/feas-project/feas-server/internal/client/config"
)

type App struct {
	config *config.Config
	client *api.Client
	reader *bufio.Reader
	out    io.Writer

	token    string
	userName string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}
