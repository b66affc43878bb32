package poiside

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// poiCSVRow mirrors the columns of POI extract files. PERCFRREF is a pointer
// so a missing value is distinguishable from an explicit 0.
type poiCSVRow struct {
	POIID    string   `csv:"POI_ID"`
	LinkID   string   `csv:"LINK_ID"`
	Name     string   `csv:"POI_NAME"`
	Fraction *float64 `csv:"PERCFRREF"`
	Side     string   `csv:"POI_ST_SD"`
}

// POIsFromCSVDir loads POI records from every *.csv file in the given directory
func POIsFromCSVDir(dir string) ([]POIRecord, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, errors.Wrap(err, "poi csv: glob directory")
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("poi csv: no *.csv files in %s", dir)
	}
	pois := []POIRecord{}
	for _, fname := range matches {
		filePOIs, err := POIsFromCSVFile(fname)
		if err != nil {
			return nil, err
		}
		pois = append(pois, filePOIs...)
	}
	return pois, nil
}

// POIsFromCSVFile loads POI records from a single CSV file. Rows with a
// missing or non-numeric fraction, or with a declared side outside {L, R},
// are excluded here so the placement engine only sees usable records; the
// exclusion count is logged.
func POIsFromCSVFile(fname string) ([]POIRecord, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "poi csv: open %s", fname)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "poi csv: read header of %s", fname)
	}

	pois := []POIRecord{}
	excluded := 0
	rowNum := 0
	for {
		rowNum++
		var row poiCSVRow
		err := decoder.Decode(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows (e.g. non-numeric PERCFRREF) are excluded, not fatal
			excluded++
			continue
		}
		if row.Fraction == nil || row.LinkID == "" {
			excluded++
			continue
		}
		side := SideFromString(row.Side)
		if side == SIDE_UNSPECIFIED {
			excluded++
			continue
		}
		poiID := row.POIID
		if poiID == "" {
			poiID = fmt.Sprintf("%s#%d", row.LinkID, rowNum)
		}
		pois = append(pois, POIRecord{
			ID:       poiID,
			LinkID:   row.LinkID,
			Name:     row.Name,
			Fraction: *row.Fraction,
			Side:     side,
		})
	}
	zap.L().Debug("poi csv file loaded",
		zap.String("file", fname),
		zap.Int("records", len(pois)),
		zap.Int("excluded", excluded),
	)
	return pois, nil
}
