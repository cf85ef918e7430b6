package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	MimeZip  = "application/zip"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SniffMimeType detects the content type from the first bytes of reader and
// returns a reader that still yields the full content.
func SniffMimeType(reader io.Reader, allowedTypes []string) (string, io.Reader, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(reader, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head := buffer[:n]
	full := io.MultiReader(bytes.NewReader(head), reader)

	mimeType := http.DetectContentType(head)
	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) {
			return mimeType, full, nil
		}
	}

	return mimeType, full, fmt.Errorf("%w: unsupported content type %s", ErrInvalidFile, mimeType)
}
