// Package curse talks to the CurseForge endpoints used for updates:
// project pages, the mcf.li widget and the client update feed.
package curse

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/tie/modupdater/models"
)

const (
	DefaultProjectURL = "https://minecraft.curseforge.com/mc-mods"
	DefaultWidgetURL  = "https://widget.mcf.li/mc-mods/minecraft"
	DefaultFeedURL    = "http://clientupdate-v6.cursecdn.com/feed/addons/432/v10"
)

// Client fetches data from CurseForge. Zero value URLs fall back to
// the defaults above.
type Client struct {
	HTTP *http.Client

	ProjectURL string
	WidgetURL  string
	FeedURL    string
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func baseURL(u, def string) string {
	if u == "" {
		u = def
	}
	return strings.TrimSuffix(u, "/")
}

func (c *Client) projectURL(projectID int) string {
	return fmt.Sprintf("%s/%d", baseURL(c.ProjectURL, DefaultProjectURL), projectID)
}

func (c *Client) widgetURL(key string) string {
	return fmt.Sprintf("%s/%s.json", baseURL(c.WidgetURL, DefaultWidgetURL), key)
}

func (c *Client) feedURL(name string) string {
	return fmt.Sprintf("%s/%s", baseURL(c.FeedURL, DefaultFeedURL), name)
}

func (c *Client) get(ctx context.Context, rawurl string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient().Do(req.WithContext(ctx))
}

func closeBody(rawurl string, r io.Closer) {
	if err := r.Close(); err != nil {
		log.Printf("close %q: %+v", rawurl, err)
	}
}

// StatusError reports a response with an unexpected status code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("get %q: status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return models.ErrUnexpectedStatus
}
