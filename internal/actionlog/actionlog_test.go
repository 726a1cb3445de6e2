package actionlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendWritesJSONLine(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSISTANT_LOG_DIR", dir)

	err := Append(Entry{
		Utterance: "buy 10 AAPL",
		Tool:      "placeOrder",
		Result:    "success",
		Params:    map[string]any{"symbol": "AAPL"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	p := filepath.Join(dir, time.Now().Format("2006-01-02")+".txt")
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read daily file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var got Entry
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Tool != "placeOrder" || got.Result != "success" || got.Time == "" {
		t.Errorf("entry = %+v", got)
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSISTANT_LOG_DIR", dir)

	old := filepath.Join(dir, "2020-01-01.txt")
	if err := os.WriteFile(old, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("expected gzip file: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("original should be removed, stat err = %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSISTANT_LOG_DIR", dir)

	recent := filepath.Join(dir, "recent.txt")
	if err := os.WriteFile(recent, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CompressOlder(0); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}
	if _, err := os.Stat(recent); err != nil {
		t.Errorf("file should be untouched: %v", err)
	}
}
