// Package dictionary reads and writes the word-frequency files the
// engine is loaded from and saved to. The format is one record per
// line, `<word> <frequency>`, whitespace separated.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wordrank/wordrank/pkg/suggest"
)

// Store is what the loader needs from the engine: absolute frequency
// sets on load, and the sorted live snapshot on save.
type Store interface {
	Update(word string, freq int)
	Snapshot() []suggest.Suggestion
}

// Load reads a word-frequency file into st. Each pair is an absolute
// set in file order, matching the engine's Update semantics. A missing
// or unreadable file is reported as an error and leaves st untouched.
func Load(path string, st Store) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dictionary file %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Errorf("closing %s: %v", path, cerr)
		}
	}()
	return LoadReader(file, st)
}

// LoadReader consumes word-frequency lines from r. Malformed lines are
// skipped with a warning; they never abort the load.
func LoadReader(r io.Reader, st Store) (int, error) {
	scanner := bufio.NewScanner(r)
	loaded := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		word, freq, ok := parseLine(line)
		if !ok {
			log.Warnf("skipping malformed dictionary line %d", lineNo)
			continue
		}
		st.Update(word, freq)
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("reading dictionary: %w", err)
	}
	log.Debugf("loaded %d words", loaded)
	return loaded, nil
}

// Save writes every live word as `<word> <frequency>`, sorted by word
// text ascending, overwriting path completely.
func Save(path string, st Store) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dictionary file %s: %w", path, err)
	}
	if err := SaveWriter(file, st); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// SaveWriter writes the live snapshot of st to w.
func SaveWriter(w io.Writer, st Store) error {
	bw := bufio.NewWriter(w)
	for _, s := range st.Snapshot() {
		if _, err := fmt.Fprintf(bw, "%s %d\n", s.Word, s.Frequency); err != nil {
			return fmt.Errorf("writing dictionary entry %q: %w", s.Word, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing dictionary: %w", err)
	}
	return nil
}

// parseLine splits one `<word> <frequency>` record. Lines with extra
// fields, no frequency, or a non-numeric frequency are rejected.
func parseLine(line string) (string, int, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, false
	}
	freq, err := strconv.Atoi(fields[1])
	if err != nil || freq < 0 {
		return "", 0, false
	}
	return fields[0], freq, true
}
