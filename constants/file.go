package constants

import "strings"

// FileKind classifies a source document by how it is rasterized.
type FileKind string

const (
	KindImage FileKind = "IMAGE"
	KindPDF   FileKind = "PDF"
)

// AllowedExtensions holds the default allowed file extensions for document collection.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToKind maps a file extension (with or without dot, any case) to its
// FileKind. ok is false for extensions the pipeline does not handle.
func MapExtToKind(ext string) (FileKind, bool) {
	switch NormalizeExt(ext) {
	case "pdf":
		return KindPDF, true
	case "jpg", "jpeg", "png":
		return KindImage, true
	default:
		return "", false
	}
}
