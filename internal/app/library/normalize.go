package library

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"s2x/internal/app/model"
)

type manifestObject struct {
	Name  any `json:"name"`
	File  any `json:"file"`
	Path  any `json:"path"`
	Title any `json:"title"`
	Hint  any `json:"hint"`
}

// ParseManifest decodes a manifest document. Anything but a JSON array is an
// error; elements without a derivable name are dropped.
func ParseManifest(data []byte) ([]model.LibraryItem, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("manifest is not a JSON array: %w", err)
	}
	if elems == nil {
		return nil, fmt.Errorf("manifest is not a JSON array")
	}
	return Normalize(elems), nil
}

// Normalize maps heterogeneous manifest elements onto library items.
// A bare string is a file name; an object contributes name, else file, else
// the last segment of path, plus string title and hint.
func Normalize(elems []json.RawMessage) []model.LibraryItem {
	return lo.FilterMap(elems, func(raw json.RawMessage, _ int) (model.LibraryItem, bool) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			s = strings.TrimSpace(s)
			return model.LibraryItem{Name: s}, s != ""
		}

		var obj manifestObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return model.LibraryItem{}, false
		}

		name, _ := lo.Coalesce(str(obj.Name), str(obj.File), lastSegment(str(obj.Path)))
		if name == "" {
			return model.LibraryItem{}, false
		}
		return model.LibraryItem{Name: name, Title: str(obj.Title), Hint: str(obj.Hint)}, true
	})
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func lastSegment(p string) string {
	if p == "" {
		return ""
	}
	return lo.LastOrEmpty(strings.Split(p, "/"))
}
