package helpers

import (
	"context"
	"fmt"
	"strings"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// ValidatedPdfPath derives the signed-variant path from the original one:
// "_validated" is inserted before the extension, directory prefix kept.
func ValidatedPdfPath(pdfPath string) string {
	dir := ""
	fileName := pdfPath
	if pos := strings.LastIndex(pdfPath, "/"); pos >= 0 {
		dir = pdfPath[:pos+1]
		fileName = pdfPath[pos+1:]
	}
	ext := ""
	if pos := strings.LastIndex(fileName, "."); pos >= 0 {
		ext = fileName[pos:]
		fileName = fileName[:pos]
	}
	return fmt.Sprintf("%s%s_validated%s", dir, fileName, ext)
}
