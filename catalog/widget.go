package catalog

import (
	"context"

	"github.com/tie/modupdater/models"
)

// WidgetFetcher is implemented by *curse.Client.
type WidgetFetcher interface {
	Widget(ctx context.Context, projectID int, slug string) (*models.Widget, error)
}

// WidgetSource reads files live from the mcf.li widget. The last
// fetched listing is kept so that trying several game versions for
// one project costs a single request.
type WidgetSource struct {
	Client WidgetFetcher

	projectID int
	slug      string
	last      *models.Widget
}

func (s *WidgetSource) Files(ctx context.Context, version string, projectID int, slug string) Result {
	w, err := s.widget(ctx, projectID, slug)
	if err != nil {
		return failed(version, err)
	}
	return found(version, w.Versions[version])
}

func (s *WidgetSource) widget(ctx context.Context, projectID int, slug string) (*models.Widget, error) {
	if s.last != nil && s.projectID == projectID && s.slug == slug {
		return s.last, nil
	}
	w, err := s.Client.Widget(ctx, projectID, slug)
	if err != nil {
		s.last = nil
		return nil, err
	}
	s.projectID, s.slug, s.last = projectID, slug, w
	return w, nil
}
