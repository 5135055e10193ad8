package ingest

import (
	"github.com/golang/glog"

	"github.com/sbl8/forcegraph/config"
	"github.com/sbl8/forcegraph/model"
)

// BuildGraph loads the markdown corpus from
// settings.Ingestion.MarkdownDir, then builds a fresh Graph — preserving position
// and velocity for any node whose string id survives — and persists
// the freshly derived metadata back to disk. prev may be nil for the
// initial build.
func BuildGraph(settings config.Settings, prev *model.Graph) (*model.Graph, error) {
	repo := NewRepository(settings.Ingestion.MarkdownDir)
	fresh, err := repo.Load()
	if err != nil {
		return nil, err
	}

	var g *model.Graph
	if prev == nil {
		g, err = model.Build(fresh)
	} else {
		g, err = model.Rebuild(fresh, prev)
	}
	if err != nil {
		return nil, err
	}

	model.SeedPositions(g, nil)

	if err := SaveMetadataStore(settings.Ingestion.MetadataPath, fresh); err != nil {
		glog.Warningf("ingest: failed to persist metadata store: %v", err)
	}

	return g, nil
}
