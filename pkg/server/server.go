package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/wordrank/wordrank/pkg/config"
	"github.com/wordrank/wordrank/pkg/dictionary"
	"github.com/wordrank/wordrank/pkg/metrics"
	"github.com/wordrank/wordrank/pkg/suggest"
)

// Server handles msgpack IPC for the suggestion engine.
type Server struct {
	engine   suggest.Suggester
	cfg      *config.Config
	dictPath string
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	metrics  *metrics.Metrics
}

// NewServer creates a server speaking msgpack over stdin/stdout.
// dictPath is where the save action persists the live dictionary.
func NewServer(engine suggest.Suggester, cfg *config.Config, dictPath string) *Server {
	return NewServerIO(engine, cfg, dictPath, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over explicit reader and writer.
func NewServerIO(engine suggest.Suggester, cfg *config.Config, dictPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:   engine,
		cfg:      cfg,
		dictPath: dictPath,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
	}
}

// SetMetrics attaches Prometheus collectors. A nil receiver on the
// collectors side makes recording a no-op, so this is optional.
func (s *Server) SetMetrics(m *metrics.Metrics) { s.metrics = m }

// Start processes requests until EOF. Decode failures on a stream that
// still has data are reported to the client and the stream is dropped,
// since msgpack framing cannot be resynchronized reliably.
func (s *Server) Start() error {
	log.Debug("starting IPC server")

	if err := s.enc.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("signaling ready: %w", err)
	}

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				log.Debug("client disconnected")
				return nil
			}
			s.sendError("", "malformed msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Action {
	case "complete":
		s.handleComplete(req)
	case "insert":
		s.handleMutation(req, "insert")
	case "update":
		s.handleMutation(req, "update")
	case "remove":
		s.handleMutation(req, "remove")
	case "save":
		s.handleSave(req)
	case "stats":
		s.send(StatsResponse{ID: req.ID, Stats: s.engine.Stats()})
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) {
	prefix := req.Prefix
	if prefix == "" {
		s.sendError(req.ID, "missing 'p' parameter", 400)
		return
	}
	if len(prefix) < s.cfg.Server.MinPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.cfg.Server.MinPrefix), 400)
		return
	}
	if len(prefix) > s.cfg.Server.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.cfg.Server.MaxPrefix), 400)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.CLI.DefaultLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.engine.Query(prefix, limit)
	elapsed := time.Since(start)

	s.metrics.ObserveQuery(len(suggestions), elapsed.Seconds())

	out := make([]ResponseSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = ResponseSuggestion{
			Word: sg.Word,
			Freq: sg.Frequency,
			Rank: uint16(i + 1),
		}
	}
	s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleMutation(req Request, op string) {
	if req.Word == "" {
		s.sendError(req.ID, "missing 'w' parameter", 400)
		return
	}
	switch op {
	case "insert":
		delta := req.Freq
		if delta == 0 {
			delta = 1
		}
		s.engine.Insert(req.Word, delta)
	case "update":
		s.engine.Update(req.Word, req.Freq)
	case "remove":
		s.engine.Remove(req.Word)
	}
	s.metrics.ObserveMutation(op)
	s.metrics.SetEngineGauges(s.engine.Stats())
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleSave(req Request) {
	if s.dictPath == "" {
		s.sendError(req.ID, "no dictionary path configured", 400)
		return
	}
	if err := dictionary.Save(s.dictPath, s.engine); err != nil {
		log.Errorf("saving dictionary: %v", err)
		s.sendError(req.ID, "failed to save dictionary", 500)
		return
	}
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
