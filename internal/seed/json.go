package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

type jsonWord struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// jsonCategory accepts both {"words": [...]} and a bare list of words
type jsonCategory struct {
	Words []jsonWord `json:"words"`
}

func (c *jsonCategory) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &c.Words)
	}

	type plain jsonCategory
	return json.Unmarshal(data, (*plain)(c))
}

type jsonDocument struct {
	Categories map[string]jsonCategory `json:"categories"`
}

// ParseJSON reads a seed document of the form
// {"categories": {"<title>": {"words": [{"word": "...", "translation": "..."}]}}}.
// Categories are returned in title order.
func ParseJSON(r io.Reader) ([]Entry, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed JSON: %w", err)
	}

	var entries []Entry
	for _, title := range slices.Sorted(maps.Keys(doc.Categories)) {
		for _, w := range doc.Categories[title].Words {
			entries = append(entries, Entry{
				Category:    title,
				Word:        w.Word,
				Translation: w.Translation,
			})
		}
	}

	return entries, nil
}

// ReadJSONFile parses the seed document at path
func ReadJSONFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return ParseJSON(f)
}
