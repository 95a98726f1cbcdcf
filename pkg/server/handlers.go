package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wiregraph/pkg/buildinfo"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/graph"
	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/pipeline"
	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/store"
)

// sourceRequest is the JSON form of an analyze or render request body.
type sourceRequest struct {
	Source  string `json:"source"`
	Refresh bool   `json:"refresh,omitempty"`
}

// AnalyzeResponse is the reply to POST /v1/analyze.
type AnalyzeResponse struct {
	ID   string `json:"id,omitempty"`
	Hash string `json:"hash"`
	*graph.Document
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type pinsResponse struct {
	Fingerprint string       `json:"fingerprint"`
	Tables      []pins.Table `json:"tables"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handlePins(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, pinsResponse{
		Fingerprint: s.runner.Pins.Fingerprint(),
		Tables:      s.runner.Pins.Tables(),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := readSource(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Refresh: req.Refresh, Logger: s.requestLogger(r)}
	a, hash, err := s.runner.Analyze(r.Context(), req.Source, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := AnalyzeResponse{Hash: hash, Document: graph.FromAnalysis(a)}
	if s.store != nil {
		rec := store.NewRecord(hash, resp.Document)
		if err := s.store.Save(r.Context(), rec); err != nil {
			writeError(w, r, err)
			return
		}
		resp.ID = rec.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := readSource(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Refresh = req.Refresh
	opts.Logger = s.requestLogger(r)

	result, err := s.runner.Execute(r.Context(), req.Source, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, opts.Formats[0], result.Artifacts[opts.Formats[0]], result.Stats.Failures)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRenderAnalysis(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := rec.Document.Analysis()
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Logger = s.requestLogger(r)

	artifacts, err := s.runner.Render(r.Context(), a, rec.Hash, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, opts.Formats[0], artifacts[opts.Formats[0]], len(a.Failures))
}

func (s *Server) lookup(r *http.Request) (*store.Record, error) {
	if s.store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "analysis archive is not configured")
	}
	return s.store.Get(r.Context(), chi.URLParam(r, "id"))
}

func (s *Server) requestLogger(r *http.Request) *log.Logger {
	return s.logger.With("request_id", RequestID(r.Context()))
}

// readSource reads the circuit text from the request body.
func readSource(r *http.Request) (sourceRequest, error) {
	var req sourceRequest
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.Unmarshal(data, &req); err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
		}
	} else {
		req.Source = string(data)
	}

	if strings.TrimSpace(req.Source) == "" {
		return req, errors.New(errors.ErrCodeInvalidInput, "source is empty")
	}
	return req, nil
}

// renderOptions reads format, detailed and scale from the query string.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{}

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.DefaultFormat
	}
	opts.Formats = []string{format}

	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid detailed value %q", v)
		}
		opts.Detailed = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale value %q", v)
		}
		opts.Scale = f
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// FailuresHeader reports how many connections were skipped.
const FailuresHeader = "X-Wiring-Failures"

func writeArtifact(w http.ResponseWriter, format string, data []byte, failures int) {
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set(FailuresHeader, strconv.Itoa(failures))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
