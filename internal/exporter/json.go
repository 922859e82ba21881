// Package exporter serializes the bookmark document for download. The JSON
// form is the canonical export; Netscape bookmark HTML is provided for
// browser interchange.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// Filename returns the export file name for the given day:
// cliptuck-export-YYYY-MM-DD.json
func Filename(now time.Time) string {
	return fmt.Sprintf("cliptuck-export-%s.json", now.Format("2006-01-02"))
}

// DefaultExportPath returns the default export file path under ~/Downloads.
func DefaultExportPath(now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads", Filename(now)), nil
}

// ExportJSON serializes the full document, pretty-printed. The caller stamps
// LastExportAt (via store.MarkExported) before calling; export always covers
// the whole document, never a filtered view.
func ExportJSON(doc *model.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
