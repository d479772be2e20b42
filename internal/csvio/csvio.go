// Package csvio is the CSV boundary of the gift ledger: it reads arbitrary
// CSV into normalized records and writes records back in canonical form.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gift-ledger/internal/fileutils"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/models"
	"gift-ledger/internal/normalizer"
	"gift-ledger/internal/parsererror"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
)

// DefaultDelimiter is the field separator of the canonical file format.
const DefaultDelimiter = ','

const streamSource = "<stream>"

// Importer parses CSV input into normalized gift records.
type Importer struct {
	delimiter  rune
	normalizer *normalizer.Normalizer
	logger     logging.Logger
}

// NewImporter creates an Importer. A zero delimiter means DefaultDelimiter.
func NewImporter(delimiter rune, n *normalizer.Normalizer, logger logging.Logger) *Importer {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if n == nil {
		n = normalizer.New(nil, logger)
	}
	return &Importer{delimiter: delimiter, normalizer: n, logger: logger}
}

// Import reads a whole CSV stream. Either every row is returned or, on any
// parse failure, nil and an *parsererror.ImportParseError.
func (im *Importer) Import(r io.Reader) ([]models.GiftRecord, error) {
	return im.importFrom(streamSource, r)
}

// ImportFile reads the CSV file at path.
func (im *Importer) ImportFile(path string) ([]models.GiftRecord, error) {
	file, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			im.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	return im.importFrom(path, file)
}

func (im *Importer) importFrom(source string, r io.Reader) ([]models.GiftRecord, error) {
	rows, err := im.readRows(source, r)
	if err != nil {
		im.logger.WithError(err).Error("CSV import failed", logging.F(logging.FieldFile, source))
		return nil, err
	}

	records := im.normalizer.Normalize(rows)
	im.logger.Info("Imported gifts from CSV",
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

func (im *Importer) readRows(source string, r io.Reader) ([]models.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &parsererror.ImportParseError{Source: source, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &parsererror.ImportParseError{Source: source, Err: parsererror.ErrEmptyInput}
	}
	if !utf8.Valid(data) {
		return nil, &parsererror.ImportParseError{Source: source, Err: parsererror.ErrInvalidEncoding}
	}

	reader := csv.NewReader(unicode.UTF8BOM.NewDecoder().Reader(bytes.NewReader(data)))
	reader.Comma = im.delimiter

	var rows []models.RawRecord
	if err := gocsv.UnmarshalCSV(&headerDedup{reader: reader}, &rows); err != nil {
		perr := &parsererror.ImportParseError{Source: source, Err: err}
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			perr.Line = csvErr.Line
			perr.Err = csvErr.Err
		}
		return nil, perr
	}
	return rows, nil
}

// headerDedup renames repeated header names to name.1, name.2, ... so the
// first column with a given name is the one that maps to a field.
type headerDedup struct {
	reader     *csv.Reader
	seenHeader bool
}

func (h *headerDedup) Read() ([]string, error) {
	record, err := h.reader.Read()
	if err != nil || h.seenHeader {
		return record, err
	}
	h.seenHeader = true
	return dedupHeader(record), nil
}

func (h *headerDedup) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		record, err := h.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func dedupHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			out[i] = name
			continue
		}
		out[i] = fmt.Sprintf("%s.%d", name, n)
	}
	return out
}

// Exporter writes gift records as canonical CSV: header row, canonical
// column order, ISO dates, True/False, decimal text.
type Exporter struct {
	delimiter rune
	logger    logging.Logger
}

// NewExporter creates an Exporter. A zero delimiter means DefaultDelimiter.
func NewExporter(delimiter rune, logger logging.Logger) *Exporter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Exporter{delimiter: delimiter, logger: logger}
}

// Export writes records to w. Errors only come from w itself.
func (ex *Exporter) Export(w io.Writer, records []models.GiftRecord) error {
	writer := csv.NewWriter(w)
	writer.Comma = ex.delimiter

	if len(records) == 0 {
		if err := writer.Write(models.Columns); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
		writer.Flush()
		return writer.Error()
	}

	rows := normalizer.ToRawRows(records)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ExportBytes renders records as CSV in memory.
func (ex *Exporter) ExportBytes(records []models.GiftRecord) []byte {
	var buf bytes.Buffer
	if err := ex.Export(&buf, records); err != nil {
		// bytes.Buffer does not fail; a failure here is a bug.
		panic(fmt.Sprintf("csvio: in-memory export failed: %v", err))
	}
	return buf.Bytes()
}

// ExportFile writes records to path, replacing it atomically.
func (ex *Exporter) ExportFile(path string, records []models.GiftRecord) error {
	if err := fileutils.WriteFileAtomic(path, ex.ExportBytes(records), models.PermissionLedgerFile); err != nil {
		ex.logger.WithError(err).Error("Failed to write CSV file", logging.F(logging.FieldFile, path))
		return fmt.Errorf("error exporting to %s: %w", path, err)
	}

	ex.logger.Info("Exported gifts to CSV",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(records)))
	return nil
}
