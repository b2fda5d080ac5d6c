// Package exporter writes filtered delivery records back out as CSV,
// both to files and to HTTP responses.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"deliverypulse/internal/dataset"
)

// WriteOptions configures CSV output.
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognises the encoding.
	BOMPrefix bool
	// IncludeTimestamp adds the Timestamp column. Only meaningful when
	// the records carry timestamps.
	IncludeTimestamp bool
}

// Header returns the CSV header row matching the dataset schema.
func Header(includeTimestamp bool) []string {
	header := []string{
		dataset.ColOrderID,
		dataset.ColPlatform,
		dataset.ColOrderValue,
		dataset.ColDeliveryTime,
		dataset.ColCategory,
		dataset.ColRating,
	}
	if includeTimestamp {
		header = append(header, dataset.ColTimestamp)
	}
	return header
}

// WriteCSV streams records to w in the dataset's own schema, so an
// exported file can be loaded straight back in.
func WriteCSV(w io.Writer, records []dataset.DeliveryRecord, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(Header(options.IncludeTimestamp)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		row := []string{
			r.OrderID,
			r.Platform,
			strconv.FormatFloat(r.OrderValue, 'f', 2, 64),
			strconv.FormatFloat(r.DeliveryTimeMin, 'f', -1, 64),
			r.Category,
			strconv.FormatFloat(r.Rating, 'f', 1, 64),
		}
		if options.IncludeTimestamp {
			ts := ""
			if !r.OrderedAt.IsZero() {
				ts = r.OrderedAt.Format("2006-01-02 15:04:05")
			}
			row = append(row, ts)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
