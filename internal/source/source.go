package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gamedex/internal/pipeline"
)

const fetchTimeout = 30 * time.Second

// LoadRecords reads an ordered sequence of raw records from a local JSON or
// YAML file, or from an HTTP(S) URL. No shape is imposed beyond "parseable
// into nested values"; dirty records are the pipeline's problem, not ours.
func LoadRecords(ref string) ([]pipeline.Value, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data, err = fetch(ref)
	} else {
		data, err = os.ReadFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("load records from %s: %w", ref, err)
	}

	var doc any
	if isYAML(ref) {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", ref, err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json %s: %w", ref, err)
		}
	}

	return recordList(pipeline.FromAny(doc)), nil
}

// recordList unwraps the document: a top-level array is the record
// sequence, an object with a "games" array uses that, anything else is a
// single record.
func recordList(doc pipeline.Value) []pipeline.Value {
	if doc.Kind == pipeline.KindArray {
		return doc.Arr
	}
	if games, ok := doc.Field("games"); ok && games.Kind == pipeline.KindArray {
		return games.Arr
	}
	return []pipeline.Value{doc}
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func isYAML(ref string) bool {
	switch strings.ToLower(path.Ext(ref)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
