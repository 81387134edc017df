// Package server exposes a SpellCorrector over HTTP.
//
// Responses are JSON unless the client asks for msgpack with
// "Accept: application/x-msgpack". Custom words live in redis; every change rebuilds the
// engine and swaps it in atomically, so in-flight requests finish on the engine they started with.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"spellpipe/internal/config"
	"spellpipe/internal/corrector"
	"spellpipe/internal/customdict"
	"spellpipe/internal/logger"
	"spellpipe/internal/textmodel"
)

const msgpackType = "application/x-msgpack"

// Server owns the current engine and the custom word store.
type Server struct {
	cfg    *config.Config
	base   *corrector.Resources
	dict   *customdict.CustomDict
	log    *log.Logger
	engine atomic.Pointer[corrector.SpellCorrector]
	// rebuilds are serialized so the last word change always wins
	mu sync.Mutex
}

// New builds the first engine from base plus the stored custom words. dict may be nil.
func New(ctx context.Context, cfg *config.Config, base *corrector.Resources, dict *customdict.CustomDict, lg *log.Logger) (*Server, error) {
	s := &Server{cfg: cfg, base: base, dict: dict, log: logger.OrDiscard(lg)}
	if err := s.rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Engine returns the engine serving new requests.
func (s *Server) Engine() *corrector.SpellCorrector { return s.engine.Load() }

func (s *Server) rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.base
	if s.dict != nil {
		words, err := s.dict.Lexicon(ctx)
		if err != nil {
			return err
		}
		res = res.WithWords(words)
	}
	start := time.Now()
	sc, err := corrector.NewSpellCorrector(s.cfg, res, s.log)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	s.engine.Store(sc)
	s.log.Info("engine swapped", "took", time.Since(start))
	return nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/correct", s.handleCorrect)
	mux.HandleFunc("/api/v1/custom-word", s.handleAddWord)
	mux.HandleFunc("/api/v1/custom-word/", s.handleRemoveWord)
	mux.HandleFunc("/api/v1/metrics", s.handleMetrics)
	return mux
}

// CorrectResponse is the body of a successful correction.
type CorrectResponse struct {
	Original  string            `json:"original" msgpack:"original"`
	Corrected string            `json:"corrected" msgpack:"corrected"`
	Changes   []textmodel.Token `json:"changes" msgpack:"changes"`
	Stats     corrector.Stats   `json:"stats" msgpack:"stats"`
}

func wantsMsgpack(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), msgpackType)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	if wantsMsgpack(r) {
		b, err := msgpack.Marshal(v)
		if err != nil {
			s.log.Error("encode response", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", msgpackType)
		w.WriteHeader(status)
		w.Write(b)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.write(w, r, status, map[string]string{"error": msg})
}

// decode reads a JSON or msgpack body, chosen by Content-Type.
func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == msgpackType {
		return msgpack.Unmarshal(body, v)
	}
	return json.Unmarshal(body, v)
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Text string `json:"text" msgpack:"text"`
	}
	if err := decode(r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
		s.fail(w, r, http.StatusBadRequest, "invalid request")
		return
	}
	res := s.Engine().CorrectText(req.Text)
	s.write(w, r, http.StatusOK, CorrectResponse{
		Original:  res.Original,
		Corrected: res.Corrected,
		Changes:   res.Changes(),
		Stats:     res.Stats,
	})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if s.dict == nil {
		s.fail(w, r, http.StatusServiceUnavailable, "custom dictionary disabled")
		return
	}
	var req struct {
		Word string `json:"word" msgpack:"word"`
	}
	if err := decode(r, &req); err != nil || strings.TrimSpace(req.Word) == "" {
		s.fail(w, r, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.dict.Add(r.Context(), req.Word); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.rebuild(r.Context()); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	s.write(w, r, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	if s.dict == nil {
		s.fail(w, r, http.StatusServiceUnavailable, "custom dictionary disabled")
		return
	}
	word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
	if word == "" {
		s.fail(w, r, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.dict.Remove(r.Context(), word); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.rebuild(r.Context()); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	s.write(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	s.write(w, r, http.StatusOK, s.Engine().Metrics().Snapshot())
}
