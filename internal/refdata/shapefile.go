package refdata

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// DefaultLGANameField is the admin-2 name attribute in the OCHA COD-AB
// boundary shapefiles for Nigeria.
const DefaultLGANameField = "ADM2_EN"

// EnrichFromShapefile fills missing zone coordinates with boundary centroids
// from an LGA shapefile, matched by name. Zones that already carry
// coordinates are left alone. path may be a .shp file or a .zip archive
// containing one; archives extract into tempDir. Returns the updated slice
// and the number of zones filled.
func EnrichFromShapefile(zones []model.Zone, path, nameField, tempDir string) ([]model.Zone, int, error) {
	if nameField == "" {
		nameField = DefaultLGANameField
	}

	shpPath := path
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		extractDir := filepath.Join(tempDir, "lga-shapefile")
		if err := os.MkdirAll(extractDir, 0o755); err != nil {
			return nil, 0, eris.Wrapf(err, "refdata: create %s", extractDir)
		}
		if err := extractZip(path, extractDir); err != nil {
			return nil, 0, err
		}
		var err error
		shpPath, err = findByExt(extractDir, ".shp")
		if err != nil {
			return nil, 0, err
		}
	}

	centroids, err := loadCentroids(shpPath, nameField)
	if err != nil {
		return nil, 0, err
	}

	var filled int
	for i := range zones {
		if !zones[i].Coordinates.IsZero() {
			continue
		}
		c, ok := centroids[normalizeName(zones[i].Name)]
		if !ok {
			zap.L().Warn("no boundary record for zone",
				zap.String("zone", zones[i].Name),
				zap.String("field", nameField),
			)
			continue
		}
		zones[i].Coordinates = c
		filled++
	}

	zap.L().Info("coordinates enriched from shapefile",
		zap.String("shapefile", shpPath),
		zap.Int("boundaries", len(centroids)),
		zap.Int("filled", filled),
	)
	return zones, filled, nil
}

// loadCentroids indexes bounding-box midpoints by normalized feature name.
// A box midpoint is a coarse centroid, but LGAs are small enough that it
// lands well inside the boundary.
func loadCentroids(shpPath, nameField string) (map[string]model.Coordinates, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, nameField)
	if nameIdx < 0 {
		return nil, eris.Errorf("refdata: shapefile has no %q field", nameField)
	}

	centroids := make(map[string]model.Coordinates)
	for reader.Next() {
		_, shape := reader.Shape()
		if shape == nil {
			continue
		}
		name := strings.TrimSpace(reader.Attribute(nameIdx))
		if name == "" {
			continue
		}
		box := shape.BBox()
		centroids[normalizeName(name)] = model.Coordinates{
			Lat: (box.MinY + box.MaxY) / 2,
			Lng: (box.MinX + box.MaxX) / 2,
		}
	}
	return centroids, nil
}

func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrapf(err, "refdata: open %s", zipPath)
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		// Flatten: shapefile sidecars must share a directory.
		destPath := filepath.Join(destDir, filepath.Base(f.Name))

		rc, err := f.Open()
		if err != nil {
			return eris.Wrapf(err, "refdata: open zip entry %s", f.Name)
		}
		out, err := os.Create(destPath)
		if err != nil {
			_ = rc.Close()
			return eris.Wrapf(err, "refdata: create %s", destPath)
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return eris.Wrapf(err, "refdata: extract %s", f.Name)
		}
		_ = out.Close()
		_ = rc.Close()
	}
	return nil
}

func findByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrapf(err, "refdata: read %s", dir)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", eris.Errorf("refdata: no %s file in %s", ext, dir)
}

// fieldIndex finds a named attribute column; shapefile field names are
// null-padded fixed-width byte arrays.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}

func normalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}
