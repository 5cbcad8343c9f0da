package source

import (
	"os"
	"path/filepath"
	"testing"

	"gamedex/internal/pipeline"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecordsJSONArray(t *testing.T) {
	path := writeFixture(t, "games.json", `[{"name":"Tag","ageMin":4},{"name":"Charades"}]`)

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	name, _ := records[0].Field("name")
	if name.Str != "Tag" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	age, _ := records[0].Field("ageMin")
	if n, ok := age.Int(); !ok || n != 4 {
		t.Fatalf("ageMin lost integer identity: %+v", age)
	}
}

func TestLoadRecordsWrappedObject(t *testing.T) {
	path := writeFixture(t, "games.json", `{"games":[{"name":"Tag"}]}`)

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestLoadRecordsYAML(t *testing.T) {
	path := writeFixture(t, "games.yaml", "- name: Tag\n  tags: [active]\n- name: Charades\n")

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	tags, _ := records[0].Field("tags")
	if tags.Kind != pipeline.KindArray || len(tags.Arr) != 1 {
		t.Fatalf("yaml array lost: %+v", tags)
	}
}

func TestLoadRecordsBadJSON(t *testing.T) {
	path := writeFixture(t, "games.json", `{"name": `)
	if _, err := LoadRecords(path); err == nil {
		t.Fatal("expected parse error")
	}
}
