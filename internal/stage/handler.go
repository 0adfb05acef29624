package stage

import (
	"context"

	"astrocopy/internal/astro"
)

// Handler is one step of the pipeline. A handler owns the record collection
// for the duration of Process and hands it back on return.
type Handler interface {
	Name() string
	Process(context.Context, astro.Files) (astro.Files, error)
}
