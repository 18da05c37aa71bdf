package app

import (
	"context"

	"github.com/hylla/tidplan/internal/domain"
)

// Store persists the whole project as one document. Load reports false when
// no document has been saved yet.
type Store interface {
	Save(context.Context, domain.Project) error
	Load(context.Context) (domain.Project, bool, error)
	Clear(context.Context) error
}
