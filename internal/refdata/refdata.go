// Package refdata maintains the zone reference dataset: file validation,
// snapshot fetching from HTTP and FTP mirrors, market-figure imports from
// XLSX workbooks and coordinate enrichment from LGA boundary shapefiles.
package refdata

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

// Problem is one validation failure in a zones file.
type Problem struct {
	Zone   string `json:"zone"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Report summarises an Inspect run over a zones file.
type Report struct {
	Path          string    `json:"path"`
	Zones         int       `json:"zones"`
	Problems      []Problem `json:"problems,omitempty"`
	NoCoordinates []string  `json:"no_coordinates,omitempty"`
}

// OK reports whether the file is usable as-is. Missing coordinates are
// advisory (the zone still scores, it just cannot join corridor searches).
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Inspect checks every record in a zones file and reports all problems,
// unlike the stores, which refuse the whole file on the first bad record.
func Inspect(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: read %s", path)
	}
	byName, err := store.DecodeZones(data, store.IsYAMLPath(path))
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: decode %s", path)
	}

	report := &Report{Path: path, Zones: len(byName)}
	for _, name := range sortedKeys(byName) {
		z := byName[name]
		if err := z.Validate(); err != nil {
			var merr *model.MalformedRecordError
			if errors.As(err, &merr) {
				report.Problems = append(report.Problems, Problem{
					Zone:   merr.Zone,
					Field:  merr.Field,
					Reason: merr.Reason,
				})
			} else {
				report.Problems = append(report.Problems, Problem{Zone: name, Reason: err.Error()})
			}
		}
		if z.Coordinates.IsZero() {
			report.NoCoordinates = append(report.NoCoordinates, name)
		}
	}
	return report, nil
}

// SeedStore loads a zones file and bulk-imports it into a writable store.
// The file is validated in full before anything is written.
func SeedStore(ctx context.Context, dst store.Importer, path string) (int, error) {
	zones, err := store.ReadZonesFile(path)
	if err != nil {
		return 0, err
	}
	n, err := dst.ImportZones(ctx, zones)
	if err != nil {
		return 0, eris.Wrapf(err, "refdata: seed from %s", path)
	}
	zap.L().Info("store seeded",
		zap.String("source", path),
		zap.Int("zones", n),
	)
	return n, nil
}

func sortedKeys(m map[string]model.Zone) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
