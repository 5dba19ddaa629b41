package store

import (
	"context"
	"strings"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// Repository provides read access to the immutable zone reference records.
// Implementations hand out snapshot values: a Zone returned to a caller is
// never mutated afterwards, so results may be shared across goroutines.
type Repository interface {
	// Zone returns the record stored under the exact name. A missing name
	// yields *model.NotFoundError; Resolve attaches the available-name list.
	Zone(ctx context.Context, name string) (model.Zone, error)

	// Names returns every zone name in ascending order.
	Names(ctx context.Context) ([]string, error)

	Close() error
}

// Importer is implemented by stores that can bulk-load zone records
// (reference-data tooling writes through this).
type Importer interface {
	ImportZones(ctx context.Context, zones []model.Zone) (int, error)
}

// HistoryFilter specifies criteria for listing saved assessments.
type HistoryFilter struct {
	Kind   model.AssessmentKind `json:"kind,omitempty"`
	Zone   string               `json:"zone,omitempty"`
	Limit  int                  `json:"limit,omitempty"`
	Offset int                  `json:"offset,omitempty"`
}

// HistoryStore persists assessment runs. File-backed repositories do not
// implement it; saving history requires a SQLite or Postgres store.
type HistoryStore interface {
	SaveAssessment(ctx context.Context, a *model.Assessment) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter HistoryFilter) ([]model.Assessment, error)
	DeleteAssessment(ctx context.Context, id string) error
}

// Resolve finds a zone for a user-supplied query: exact name first, then
// case-insensitive equality, then substring, both scans over the sorted name
// list so ties resolve deterministically. No match returns
// *model.NotFoundError carrying the full name list.
func Resolve(ctx context.Context, repo Repository, query string) (model.Zone, error) {
	if strings.TrimSpace(query) == "" {
		return model.Zone{}, &model.InvalidInputError{Field: "locality", Reason: "empty"}
	}

	z, err := repo.Zone(ctx, query)
	if err == nil {
		return z, nil
	}
	if !model.IsNotFound(err) {
		return model.Zone{}, err
	}

	names, err := repo.Names(ctx)
	if err != nil {
		return model.Zone{}, err
	}

	q := strings.ToLower(query)
	for _, name := range names {
		if strings.ToLower(name) == q {
			return repo.Zone(ctx, name)
		}
	}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			return repo.Zone(ctx, name)
		}
	}

	return model.Zone{}, &model.NotFoundError{Query: query, Available: names}
}
