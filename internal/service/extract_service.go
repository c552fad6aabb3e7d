package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrUnparsable marks a file that matched the whitelist but could not be
// read by its format parser. Handlers map it to a client error.
var ErrUnparsable = errors.New("failed to parse file")

// ExtractService turns an uploaded statement into a single text blob,
// dispatching purely on the file extension. Spreadsheet-like formats are
// flattened back to JSON text for the analysis stage.
type ExtractService struct {
	logger *zap.Logger
}

func NewExtractService(logger *zap.Logger) *ExtractService {
	return &ExtractService{logger: logger}
}

func (s *ExtractService) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = s.extractPDF(data)
	case ".csv":
		text, err = s.extractCSV(data)
	case ".xlsx", ".xls":
		text, err = s.extractSpreadsheet(data)
	case ".txt":
		text = string(data)
	default:
		return "", fmt.Errorf("unsupported file format: %s", ext)
	}

	if err != nil {
		s.logger.Warn("Text extraction failed",
			zap.String("file", fileName),
			zap.String("ext", ext),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	s.logger.Info("Text extraction completed",
		zap.String("file", fileName),
		zap.String("ext", ext),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

func (s *ExtractService) extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var builder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		if pageText != "" {
			builder.WriteString(pageText)
			builder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", fmt.Errorf("no text found in PDF")
	}

	return text, nil
}

// extractCSV parses the rows and re-serializes them as a JSON record list,
// keyed by the header row.
func (s *ExtractService) extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("empty CSV file")
	}

	return rowsToJSON(rows)
}

// extractSpreadsheet reads the first worksheet only. Legacy BIFF (.xls) files
// that excelize cannot open surface as parse errors.
func (s *ExtractService) extractSpreadsheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return rowsToJSON(rows)
}

// rowsToJSON converts header-plus-data rows into a JSON array of objects.
// A single-row input has no data rows; the header alone is serialized so the
// blob is still non-empty.
func rowsToJSON(rows [][]string) (string, error) {
	header := rows[0]

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}

	var out []byte
	var err error
	if len(records) == 0 {
		out, err = json.MarshalIndent(header, "", "  ")
	} else {
		out, err = json.MarshalIndent(records, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to serialize records: %w", err)
	}

	return string(out), nil
}
