package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wordrank/wordrank/pkg/suggest"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestLoadReader(t *testing.T) {
	e := suggest.NewEngine(5)
	input := "dog 2\ndoge 9\n"

	loaded, err := LoadReader(strings.NewReader(input), e)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if loaded != 2 {
		t.Errorf("loaded = %d, want 2", loaded)
	}

	got := e.Query("do", 1)
	if len(got) != 1 || got[0] != (suggest.Suggestion{Word: "doge", Frequency: 9}) {
		t.Errorf("Query(do, 1) = %v, want [doge 9]", got)
	}
}

func TestLoadReaderSkipsMalformedLines(t *testing.T) {
	e := suggest.NewEngine(5)
	input := strings.Join([]string{
		"good 5",
		"",
		"missingfreq",
		"bad freq",
		"toomany fields 3",
		"negative -2",
		"fine 1",
	}, "\n")

	loaded, err := LoadReader(strings.NewReader(input), e)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if loaded != 2 {
		t.Errorf("loaded = %d, want 2", loaded)
	}
	if stats := e.Stats(); stats["liveWords"] != 2 {
		t.Errorf("liveWords = %d, want 2", stats["liveWords"])
	}
}

func TestLoadIsAbsoluteSet(t *testing.T) {
	e := suggest.NewEngine(5)
	// The same word twice: last value wins, no accumulation.
	input := "dup 5\ndup 3\n"

	if _, err := LoadReader(strings.NewReader(input), e); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	got := e.Query("dup", 1)
	if len(got) != 1 || got[0].Frequency != 3 {
		t.Errorf("expected absolute set to 3, got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	e := suggest.NewEngine(5)
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), e)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if stats := e.Stats(); stats["totalWords"] != 0 {
		t.Errorf("failed load touched the engine: %v", stats)
	}
}

func TestSaveWriterSortedByWord(t *testing.T) {
	e := suggest.NewEngine(5)
	e.Update("pear", 3)
	e.Update("apple", 9)
	e.Update("plum", 1)
	e.Remove("plum")

	var buf bytes.Buffer
	if err := SaveWriter(&buf, e); err != nil {
		t.Fatalf("SaveWriter: %v", err)
	}

	want := "apple 9\npear 3\n"
	if buf.String() != want {
		t.Errorf("SaveWriter output = %q, want %q", buf.String(), want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")

	src := suggest.NewEngine(5)
	src.Update("cat", 5)
	src.Update("car", 7)
	src.Update("dog", 2)
	if err := Save(path, src); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := suggest.NewEngine(5)
	loaded, err := Load(path, dst)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != 3 {
		t.Errorf("loaded = %d, want 3", loaded)
	}
	got := dst.Query("ca", 2)
	if len(got) != 2 || got[0].Word != "car" || got[1].Word != "cat" {
		t.Errorf("Query(ca, 2) after round trip = %v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("stale 999\nother 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	e := suggest.NewEngine(5)
	e.Update("only", 4)
	if err := Save(path, e); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "only 4\n" {
		t.Errorf("file = %q, want full overwrite", string(data))
	}
}
