package catalog

import (
	"context"
	"log"
	"strconv"

	"github.com/akrylysov/pogreb"
)

// SlugResolver is implemented by *curse.Client.
type SlugResolver interface {
	ProjectSlug(ctx context.Context, projectID int) (string, error)
}

// SlugCache remembers resolved slugs in a pogreb database. Slugs
// never change for a project, so entries do not expire.
type SlugCache struct {
	Resolver SlugResolver
	Database *pogreb.DB
}

func (c *SlugCache) ProjectSlug(ctx context.Context, projectID int) (string, error) {
	key := []byte(strconv.Itoa(projectID))
	v, err := c.Database.Get(key)
	if err != nil {
		log.Printf("get slug %d: %+v", projectID, err)
	} else if len(v) > 0 {
		return string(v), nil
	}
	slug, err := c.Resolver.ProjectSlug(ctx, projectID)
	if err != nil {
		return "", err
	}
	if err := c.Database.Put(key, []byte(slug)); err != nil {
		log.Printf("put slug %d: %+v", projectID, err)
	}
	return slug, nil
}
