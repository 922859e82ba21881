// Package importer parses user-supplied bookmark files. A file failing shape
// validation is rejected as a whole; there is no partial import.
package importer

import (
	"encoding/json"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// ParseJSON validates and decodes an exported document. The bookmark list
// must be an array; anything else is a FormatError.
func ParseJSON(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &model.FormatError{Reason: "file is not valid JSON"}
	}
	if doc.Bookmarks == nil {
		return nil, &model.FormatError{Reason: "missing bookmarks array"}
	}
	return &doc, nil
}
