// Package cli implements the interactive command loop for testing and
// maintaining a dictionary by hand.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wordrank/wordrank/internal/bench"
	"github.com/wordrank/wordrank/internal/utils"
	"github.com/wordrank/wordrank/pkg/config"
	"github.com/wordrank/wordrank/pkg/dictionary"
	"github.com/wordrank/wordrank/pkg/suggest"
)

// InputHandler reads commands from stdin and drives the engine.
type InputHandler struct {
	engine          suggest.Suggester
	cfg             *config.Config
	dictPath        string
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	in              io.Reader
}

// NewInputHandler wires an interactive handler to the engine.
// dictPath is the file the save and load commands operate on.
func NewInputHandler(engine suggest.Suggester, cfg *config.Config, dictPath string) *InputHandler {
	return &InputHandler{
		engine:          engine,
		cfg:             cfg,
		dictPath:        dictPath,
		minPrefixLength: cfg.CLI.DefaultMinLen,
		maxPrefixLength: cfg.CLI.DefaultMaxLen,
		suggestLimit:    cfg.CLI.DefaultLimit,
		noFilter:        cfg.CLI.DefaultNoFilter,
		in:              os.Stdin,
	}
}

// Start runs the command loop until EOF or the exit command.
func (h *InputHandler) Start() error {
	log.Print("wordrank interactive CLI")
	log.Print("type 'help' for commands (Ctrl+C to exit):")
	reader := bufio.NewReader(h.in)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !h.handleCommand(line) {
			return nil
		}
	}
}

// handleCommand dispatches one input line. It returns false when the
// loop should stop.
func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		printHelp()
	case "suggest":
		h.handleSuggest(args)
	case "scan":
		h.handleScan(args)
	case "add":
		h.handleAdd(args)
	case "update":
		h.handleUpdate(args)
	case "remove":
		h.handleRemove(args)
	case "save":
		h.handleSave()
	case "load":
		h.handleLoad(args)
	case "stats":
		h.handleStats()
	case "bench":
		h.handleBench(args)
	default:
		log.Warnf("unknown command %q, type 'help' for usage", cmd)
	}
	return true
}

func printHelp() {
	log.Print("commands:")
	log.Print("  suggest <prefix> [k]          show top-k suggestions for prefix")
	log.Print("  scan <prefix> [limit]         exhaustive ranked listing for prefix")
	log.Print("  add <word> [delta]            increment word frequency (default 1)")
	log.Print("  update <word> <freq>          set word frequency exactly")
	log.Print("  remove <word>                 remove word")
	log.Print("  save                          write live words back to the dictionary file")
	log.Print("  load <path>                   load a word-frequency file")
	log.Print("  stats                         engine counters")
	log.Print("  bench <queries> <prefixLen> [workers]   run a query benchmark")
	log.Print("  exit                          quit")
}

func (h *InputHandler) handleSuggest(args []string) {
	if len(args) < 1 {
		log.Warn("usage: suggest <prefix> [k]")
		return
	}
	prefix := args[0]
	limit := h.suggestLimit
	if len(args) > 1 {
		if k, err := strconv.Atoi(args[1]); err == nil {
			limit = k
		}
	}
	if !h.validPrefix(prefix) {
		return
	}

	start := time.Now()
	suggestions := h.engine.Query(prefix, limit)
	elapsed := time.Since(start)
	log.Debugf("took [ %v ] for prefix %q", elapsed, prefix)

	h.printSuggestions(prefix, suggestions)
}

func (h *InputHandler) handleScan(args []string) {
	if len(args) < 1 {
		log.Warn("usage: scan <prefix> [limit]")
		return
	}
	prefix := args[0]
	limit := 0
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			limit = n
		}
	}
	suggestions := h.engine.Scan(prefix, limit, h.cfg.Dict.MinFreqThreshold)
	h.printSuggestions(prefix, suggestions)
}

func (h *InputHandler) handleAdd(args []string) {
	if len(args) < 1 {
		log.Warn("usage: add <word> [delta]")
		return
	}
	delta := 1
	if len(args) > 1 {
		if d, err := strconv.Atoi(args[1]); err == nil {
			delta = d
		}
	}
	h.engine.Insert(args[0], delta)
	log.Printf("added/incremented %q by %d", args[0], delta)
}

func (h *InputHandler) handleUpdate(args []string) {
	if len(args) < 2 {
		log.Warn("usage: update <word> <freq>")
		return
	}
	freq, err := strconv.Atoi(args[1])
	if err != nil {
		log.Warnf("bad frequency %q", args[1])
		return
	}
	h.engine.Update(args[0], freq)
	log.Printf("updated %q to freq %d", args[0], freq)
}

func (h *InputHandler) handleRemove(args []string) {
	if len(args) < 1 {
		log.Warn("usage: remove <word>")
		return
	}
	h.engine.Remove(args[0])
	log.Printf("removed %q", args[0])
}

func (h *InputHandler) handleSave() {
	if h.dictPath == "" {
		log.Warn("no dictionary file configured")
		return
	}
	if err := dictionary.Save(h.dictPath, h.engine); err != nil {
		log.Errorf("save failed: %v", err)
		return
	}
	log.Printf("saved to %s", h.dictPath)
}

func (h *InputHandler) handleLoad(args []string) {
	path := h.dictPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		log.Warn("usage: load <path>")
		return
	}
	loaded, err := dictionary.Load(path, h.engine)
	if err != nil {
		log.Errorf("load failed: %v", err)
		return
	}
	log.Printf("loaded %d words from %s", loaded, path)
}

func (h *InputHandler) handleStats() {
	stats := h.engine.Stats()
	log.Printf("words: %s (live %s), trie nodes: %s, max freq: %s, k/node: %d",
		utils.FormatWithCommas(stats["totalWords"]),
		utils.FormatWithCommas(stats["liveWords"]),
		utils.FormatWithCommas(stats["trieNodes"]),
		utils.FormatWithCommas(stats["maxFrequency"]),
		stats["kPerNode"])
}

func (h *InputHandler) handleBench(args []string) {
	opts := bench.Options{Limit: h.suggestLimit}
	if len(args) > 0 {
		opts.Queries, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		opts.PrefixLen, _ = strconv.Atoi(args[1])
	}
	if len(args) > 2 {
		opts.Workers, _ = strconv.Atoi(args[2])
	}
	result, err := bench.Run(h.engine, opts)
	if err != nil {
		log.Errorf("bench failed: %v", err)
		return
	}
	log.Print(result.String())
}

func (h *InputHandler) validPrefix(prefix string) bool {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("prefix too short: %q", prefix)
		return false
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("prefix too long: %q", prefix)
		return false
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		log.Printf("no results found for prefix %q", prefix)
		return false
	}
	return true
}

func (h *InputHandler) printSuggestions(prefix string, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		log.Warnf("no suggestions found for prefix %q", prefix)
		return
	}
	log.Printf("found %d suggestions for prefix %q:", len(suggestions), prefix)
	for i, s := range suggestions {
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		log.Printf("%2d. %-40s (freq: %8s)", i+1, clWord, fmtFreq)
	}
}
