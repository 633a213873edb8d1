package handlers

import (
	"context"

	"media-studio/internal/enhance"
	"media-studio/internal/importer"
	"media-studio/internal/mediatypes"
	"media-studio/internal/project"
)

// MediaImporter is the slice of the importer the handlers consume.
type MediaImporter interface {
	Import(ctx context.Context, name, contentType string, data []byte) (*mediatypes.MediaItem, error)
	ImportAll(ctx context.Context, files []importer.File) []importer.Result
}

// RefResolver turns stored references into playback paths.
type RefResolver interface {
	Resolve(ctx context.Context, ref string) string
}

// Handlers carries the wired core components behind the HTTP surface.
type Handlers struct {
	importer MediaImporter
	resolver RefResolver
	projects *project.Store
	enhancer enhance.Service
}

// New creates the handler set. enhancer may be nil when no enhancement
// service is configured; its endpoint then answers 503.
func New(imp MediaImporter, res RefResolver, projects *project.Store, enhancer enhance.Service) *Handlers {
	return &Handlers{
		importer: imp,
		resolver: res,
		projects: projects,
		enhancer: enhancer,
	}
}
