package curse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tie/modupdater/models"
)

// Widget fetches the file listing of a project. The widget is keyed by
// slug; some projects are only known as "{id}-{slug}", which is tried
// when the first request does not succeed.
func (c *Client) Widget(ctx context.Context, projectID int, slug string) (*models.Widget, error) {
	u := c.widgetURL(slug)
	w, err := c.fetchWidget(ctx, u)
	if err == nil {
		return w, nil
	}
	var serr *StatusError
	if !errors.As(err, &serr) {
		return nil, err
	}
	u = c.widgetURL(fmt.Sprintf("%d-%s", projectID, slug))
	return c.fetchWidget(ctx, u)
}

func (c *Client) fetchWidget(ctx context.Context, u string) (*models.Widget, error) {
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer closeBody(u, resp.Body)
	if resp.StatusCode != 200 {
		return nil, &StatusError{u, resp.StatusCode}
	}

	// Don’t read listings larger than 8MiB.
	lr := io.LimitReader(resp.Body, 8*1024*1024)

	var w models.Widget
	if err := json.NewDecoder(lr).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode %q: %w: %v", u, models.ErrMalformedData, err)
	}
	return &w, nil
}
