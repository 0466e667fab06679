package curse

import (
	"context"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/tie/modupdater/models"
)

var (
	canonicalSel = cascadia.MustCompile(`link[rel="canonical"]`)
	ogURLSel     = cascadia.MustCompile(`meta[property="og:url"]`)
)

// ProjectSlug resolves the URL name of a project. CurseForge redirects
// numeric project URLs to the canonical one, so the slug is the last
// path element of the final URL. When no redirect happens the page's
// canonical link is used instead.
func (c *Client) ProjectSlug(ctx context.Context, projectID int) (string, error) {
	u := c.projectURL(projectID)
	resp, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}
	defer closeBody(u, resp.Body)
	if resp.StatusCode != 200 {
		return "", &StatusError{u, resp.StatusCode}
	}

	id := strconv.Itoa(projectID)
	if slug := slugFromURL(resp.Request.URL); slug != "" && slug != id {
		return slug, nil
	}

	// Don’t read HTML pages larger than 1MiB.
	lr := io.LimitReader(resp.Body, 1024*1024)
	root, err := html.Parse(lr)
	if err != nil {
		return "", err
	}
	rawurl, err := canonicalURL(root)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(rawurl)
	if err != nil {
		return "", err
	}
	if slug := slugFromURL(ref); slug != "" && slug != id {
		return slug, nil
	}
	return "", models.ErrSlugNotFound
}

func slugFromURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

func canonicalURL(root *html.Node) (string, error) {
	if n := canonicalSel.MatchFirst(root); n != nil {
		if v, ok := attr(n, "href"); ok {
			return v, nil
		}
	}
	if n := ogURLSel.MatchFirst(root); n != nil {
		if v, ok := attr(n, "content"); ok {
			return v, nil
		}
	}
	return "", models.ErrUnexpectedNode
}

func attr(n *html.Node, key string) (string, bool) {
	if n.Type != html.ElementNode || n.Namespace != "" {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		if a.Key != key {
			continue
		}
		return a.Val, true
	}
	return "", false
}
