package documents

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const pdfMimeType = "application/pdf"

// content is the derived metadata of an uploaded file.
type content struct {
	fileName  string
	extension string
	mimeType  string
	size      int64
	pageCount *int
	checksum  string
}

func describe(logger *slog.Logger, file File) content {
	name := sanitizeFilename(file.Name)
	mimeType := detectContentType(file.MimeType, file.Data)

	return content{
		fileName:  name,
		extension: extension(name),
		mimeType:  mimeType,
		size:      int64(len(file.Data)),
		pageCount: extractPDFPageCount(logger, file.Data, mimeType),
		checksum:  checksum(file.Data),
	}
}

func (c content) apply(d *Document) {
	d.FileName = c.fileName
	d.FileExtension = c.extension
	d.MimeType = c.mimeType
	d.FileSize = c.size
	d.PageCount = c.pageCount
	d.Checksum = c.checksum
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != DefaultMimeType {
		return header
	}
	if len(data) == 0 {
		return DefaultMimeType
	}
	if detected := http.DetectContentType(data); detected != "" {
		return detected
	}
	return DefaultMimeType
}

func extractPDFPageCount(logger *slog.Logger, data []byte, mimeType string) *int {
	if mimeType != pdfMimeType {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "document"
	}
	return name
}
