// Package fileextract turns an uploaded statement into prompt content.
// CSV files are rendered as text locally; PDF bytes are forwarded to the
// model as inline data instead of being parsed on the server.
package fileextract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"moneypal-go-be/ai"
)

// Row cap keeps CSV context within token quotas.
const maxCSVRows = 200

// FromUpload converts an uploaded file into prompt parts: a text block, an
// attachment list, or neither. Extraction failure degrades to no file
// context and never fails the chat.
func FromUpload(filename string, data []byte, log *logrus.Logger) (string, []ai.Attachment) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		text, err := renderCSV(data)
		if err != nil {
			log.WithError(err).WithField("filename", filename).Warn("Failed to read uploaded CSV")
			return "", nil
		}
		return text, nil
	case ".pdf":
		return "", []ai.Attachment{{MIMEType: "application/pdf", Data: data}}
	default:
		log.WithField("filename", filename).Info("Ignoring upload with unsupported extension")
		return "", nil
	}
}

func renderCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // statements vary, accept ragged rows
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse CSV: %w", err)
	}

	truncated := false
	if len(records) > maxCSVRows {
		records = records[:maxCSVRows]
		truncated = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CSV Data (%d rows):\n", len(records))
	for _, row := range records {
		b.WriteString(strings.Join(row, " | "))
		b.WriteByte('\n')
	}
	if truncated {
		b.WriteString("(truncated)\n")
	}
	return b.String(), nil
}
