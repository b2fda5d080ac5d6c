package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "deliverypulse/internal/errors"
)

// Column names expected in the delivery CSV. These match the source
// dataset headers exactly.
const (
	ColOrderID      = "Order ID"
	ColPlatform     = "Platform"
	ColOrderValue   = "Order Value (INR)"
	ColDeliveryTime = "Delivery Time (Minutes)"
	ColCategory     = "Product Category"
	ColRating       = "Service Rating"
	ColTimestamp    = "Timestamp"
)

// RequiredColumns is the fixed six-column schema every dataset must carry
var RequiredColumns = []string{
	ColOrderID,
	ColPlatform,
	ColOrderValue,
	ColDeliveryTime,
	ColCategory,
	ColRating,
}

// timestampLayouts are tried in order when parsing the optional Timestamp column
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Load reads and validates the delivery CSV at path. On any schema or
// parse error no partial dataset is returned.
func Load(path string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open dataset file %s", path), err)
	}
	defer f.Close()

	ds, err := Read(f, path, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", ds.Len()),
		slog.Int("platforms", len(ds.Platforms())),
		slog.Int("categories", len(ds.Categories())),
		slog.Bool("timestamps", ds.HasTimestamps()))

	return ds, nil
}

// Read parses delivery records from r. The source string is used for
// error messages and Dataset.Source only.
func Read(r io.Reader, source string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			ColOrderID:      series.String,
			ColPlatform:     series.String,
			ColOrderValue:   series.Float,
			ColDeliveryTime: series.Float,
			ColCategory:     series.String,
			ColRating:       series.Float,
			ColTimestamp:    series.String,
		}),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read CSV %s", source), df.Err)
	}

	if err := validateColumns(df.Names()); err != nil {
		return nil, err
	}

	nrow := df.Nrow()

	orderIDs := df.Col(ColOrderID).Records()
	platforms := df.Col(ColPlatform).Records()
	categories := df.Col(ColCategory).Records()
	orderValues := df.Col(ColOrderValue).Float()
	deliveryTimes := df.Col(ColDeliveryTime).Float()
	ratings := df.Col(ColRating).Float()

	hasTimestamps := hasColumn(df.Names(), ColTimestamp)
	var timestamps []string
	if hasTimestamps {
		timestamps = df.Col(ColTimestamp).Records()
	}

	records := make([]DeliveryRecord, 0, nrow)
	for i := 0; i < nrow; i++ {
		// Header is line 1, so data row i lives on CSV line i+2
		line := i + 2

		if math.IsNaN(orderValues[i]) {
			return nil, malformedValueError(ColOrderValue, line, source)
		}
		if math.IsNaN(deliveryTimes[i]) {
			return nil, malformedValueError(ColDeliveryTime, line, source)
		}
		if math.IsNaN(ratings[i]) {
			return nil, malformedValueError(ColRating, line, source)
		}

		rec := DeliveryRecord{
			OrderID:         strings.TrimSpace(orderIDs[i]),
			Platform:        strings.TrimSpace(platforms[i]),
			OrderValue:      orderValues[i],
			DeliveryTimeMin: deliveryTimes[i],
			Category:        strings.TrimSpace(categories[i]),
			Rating:          ratings[i],
		}

		if hasTimestamps {
			ts, err := parseTimestamp(timestamps[i])
			if err != nil {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("malformed value in column %q at line %d of %s", ColTimestamp, line, source), err)
			}
			rec.OrderedAt = ts
		}

		records = append(records, rec)
	}

	logger.Debug("dataset parsed",
		slog.String("source", source),
		slog.Int("rows", len(records)))

	return &Dataset{
		records:       records,
		platforms:     distinctSorted(records, func(r DeliveryRecord) string { return r.Platform }),
		categories:    distinctSorted(records, func(r DeliveryRecord) string { return r.Category }),
		hasTimestamps: hasTimestamps,
		source:        source,
		loadedAt:      time.Now(),
	}, nil
}

// validateColumns checks the required schema and reports every missing
// column in a single error.
func validateColumns(names []string) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !hasColumn(names, col) {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		quoted := make([]string, len(missing))
		for i, col := range missing {
			quoted[i] = fmt.Sprintf("%q", col)
		}
		return apperrors.NewSchemaError(
			fmt.Sprintf("missing required column(s): %s", strings.Join(quoted, ", ")), nil)
	}

	return nil
}

func hasColumn(names []string, col string) bool {
	for _, name := range names {
		if name == col {
			return true
		}
	}
	return false
}

func malformedValueError(col string, line int, source string) error {
	return apperrors.NewParsingError(
		fmt.Sprintf("malformed numeric value in column %q at line %d of %s", col, line, source), nil)
}

// parseTimestamp tries the supported layouts in order
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
