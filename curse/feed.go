package curse

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FeedTimestamp returns the publish timestamp of a feed file. It is
// stored next to the file with a ".txt" suffix.
func (c *Client) FeedTimestamp(ctx context.Context, name string) (int64, error) {
	u := c.feedURL(name + ".txt")
	resp, err := c.get(ctx, u)
	if err != nil {
		return 0, err
	}
	defer closeBody(u, resp.Body)
	if resp.StatusCode != 200 {
		return 0, &StatusError{u, resp.StatusCode}
	}

	// Don’t read timestamps larger than 1KiB.
	lr := io.LimitReader(resp.Body, 1024)

	var b strings.Builder
	if _, err := io.Copy(&b, lr); err != nil {
		return 0, err
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(b.String()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", u, err)
	}
	return ts, nil
}

// FeedDownload copies the named feed file to w.
func (c *Client) FeedDownload(ctx context.Context, name string, w io.Writer) error {
	u := c.feedURL(name)
	resp, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	defer closeBody(u, resp.Body)
	if resp.StatusCode != 200 {
		return &StatusError{u, resp.StatusCode}
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
