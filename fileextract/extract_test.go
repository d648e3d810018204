package fileextract

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestFromUpload_CSV(t *testing.T) {
	data := []byte("date,description,amount\n2026-08-01,Swiggy,450\n2026-08-02,Uber,220\n")

	text, attachments := FromUpload("statement.csv", data, quietLogger())

	require.Empty(t, attachments)
	assert.Contains(t, text, "CSV Data (3 rows):")
	assert.Contains(t, text, "2026-08-01 | Swiggy | 450")
	assert.Contains(t, text, "2026-08-02 | Uber | 220")
}

func TestFromUpload_CSVTruncated(t *testing.T) {
	var data []byte
	for i := 0; i < maxCSVRows+50; i++ {
		data = append(data, []byte("2026-08-01,row,1\n")...)
	}

	text, attachments := FromUpload("big.csv", data, quietLogger())

	require.Empty(t, attachments)
	assert.Contains(t, text, "(truncated)")
}

func TestFromUpload_PDF(t *testing.T) {
	data := []byte("%PDF-1.4 fake")

	text, attachments := FromUpload("Statement.PDF", data, quietLogger())

	assert.Empty(t, text)
	require.Len(t, attachments, 1)
	assert.Equal(t, "application/pdf", attachments[0].MIMEType)
	assert.Equal(t, data, attachments[0].Data)
}

func TestFromUpload_UnsupportedExtension(t *testing.T) {
	text, attachments := FromUpload("notes.txt", []byte("hello"), quietLogger())

	assert.Empty(t, text)
	assert.Empty(t, attachments)
}
