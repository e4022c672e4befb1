// File: internal/services/extract/interface.go
package extract

import "strings"

// Extractor turns document bytes into plain text.
type Extractor interface {
	Text(data []byte) (string, error)
}

// IsDocument reports whether the mimetype is a supported document type.
func IsDocument(mimetype string) bool {
	return mimetype == "application/pdf"
}

// IsImage reports whether the mimetype is an image type.
func IsImage(mimetype string) bool {
	return strings.HasPrefix(mimetype, "image/")
}
