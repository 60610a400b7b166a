/*
Package main implements the wordrank suggestion server and CLI.

wordrank serves prefix-based word suggestions ranked by usage
frequency. The engine keeps a character trie whose nodes cache a
bounded Top-K list of the best words beneath them, so a query costs
the prefix walk plus K cache reads regardless of dictionary size, and
every insert, update, or removal repairs the caches incrementally
without rebuilding the index.

# Usage

Start the msgpack IPC server with a dictionary file:

	wordrank -file keywords.txt

Run the interactive CLI instead:

	wordrank -file keywords.txt -c

The dictionary file holds one `<word> <frequency>` pair per line and
is rewritten in full by the save operation, sorted by word.

# Configuration

Runtime options live in a TOML file that is created with defaults when
missing:

	[engine]
	top_k_per_node = 12

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60

The per-node cache bound is fixed at engine construction; changing it
means reloading the dictionary into a fresh engine.

# IPC protocol

Server mode speaks msgpack over stdin/stdout. Completion requests and
mutations share one envelope; see the server package for the message
shapes. Timing information is included in completion responses.

# Metrics

With -metrics the process exposes Prometheus collectors for query and
mutation counts, query latency, and engine gauges on /metrics at the
given address.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/wordrank/wordrank/internal/cli"
	"github.com/wordrank/wordrank/internal/logger"
	"github.com/wordrank/wordrank/internal/utils"
	"github.com/wordrank/wordrank/pkg/config"
	"github.com/wordrank/wordrank/pkg/dictionary"
	"github.com/wordrank/wordrank/pkg/metrics"
	"github.com/wordrank/wordrank/pkg/server"
	"github.com/wordrank/wordrank/pkg/suggest"
)

const (
	Version = "0.3.1"
	AppName = "wordrank"
)

// sigHandler exits cleanly on SIGINT/SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, engine, and the chosen front end; the logic for
// each lives in its own package.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config.toml (default: user config dir)")
	dictFile := flag.String("file", "", "Word-frequency file to load (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI instead of the IPC server")
	kPerNode := flag.Int("k", 0, "Per-node Top-K cache bound (overrides config)")
	metricsAddr := flag.String("metrics", "", "Expose Prometheus metrics on this address (e.g. :9090)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Debugf("using config file: (%s)", utils.GetAbsolutePath(activePath))

	kBound := appConfig.Engine.TopKPerNode
	if *kPerNode > 0 {
		kBound = *kPerNode
	}
	engine := suggest.NewEngine(kBound)

	dictPath := appConfig.Dict.Path
	if *dictFile != "" {
		dictPath = *dictFile
	}
	if dictPath != "" {
		loaded, err := dictionary.Load(dictPath, engine)
		if err != nil {
			log.Warnf("could not open %q, starting with empty dictionary: %v", dictPath, err)
		} else {
			log.Debugf("loaded %d words from %s", loaded, dictPath)
		}
	}

	var m *metrics.Metrics
	if *metricsAddr != "" {
		m = metrics.New()
		m.SetEngineGauges(engine.Stats())
		go func() {
			if err := metrics.Serve(*metricsAddr); err != nil {
				log.Errorf("metrics listener: %v", err)
			}
		}()
		log.Debugf("metrics exposed on %s/metrics", *metricsAddr)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(engine, appConfig, dictPath)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC server")
	srv := server.NewServer(engine, appConfig, dictPath)
	srv.SetMetrics(m)

	showStartupInfo(dictPath, engine)

	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func printVersion() {
	vlog := logger.Default("")

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ wordrank ] ranked prefix suggestions")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
}

// showStartupInfo prints basic init info regardless of log level.
func showStartupInfo(dictPath string, engine *suggest.Engine) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	stats := engine.Stats()
	log.Infof("%s %s", AppName, Version)
	log.Infof("pid: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s ), %d live words", dictPath, stats["liveWords"])
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
