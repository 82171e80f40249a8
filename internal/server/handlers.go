package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/matzehuels/classlayout/pkg/buildinfo"
	"github.com/matzehuels/classlayout/pkg/diagram"
	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/layout"
	"github.com/matzehuels/classlayout/pkg/pipeline"
)

// layoutRequest is the body of /v1/layout and /v1/render. Config keys that
// are omitted keep the server's base configuration.
type layoutRequest struct {
	Diagram diagram.Diagram `json:"diagram"`
	Config  layout.Config   `json:"config"`
	Refresh bool            `json:"refresh,omitempty"`
}

// batchRequest is the body of /v1/layout/batch.
type batchRequest struct {
	Diagrams []diagram.Diagram `json:"diagrams"`
	Config   layout.Config     `json:"config"`
}

type batchResponse struct {
	Layouts []json.RawMessage `json:"layouts"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatNodelink: "image/svg+xml",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatPNG:      "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON, pipeline.DefaultStyle)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	style := r.URL.Query().Get("style")
	if style == "" {
		style = pipeline.DefaultStyle
	}
	s.serveArtifact(w, r, format, style)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, style string) {
	ctx := r.Context()
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := pipeline.ValidateStyle(style); err != nil {
		s.writeError(w, r, err)
		return
	}

	req := layoutRequest{Config: s.cfg.Layout}
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errs.ValidateLimits(len(req.Diagram.Entities), len(req.Diagram.Relationships), s.cfg.Limits); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(ctx, req.Diagram, pipeline.Options{
		Config:  req.Config,
		Refresh: req.Refresh,
		Formats: []string{format},
		Style:   style,
		Logger:  loggerFrom(ctx),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Layout-Hash", result.LayoutHash)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := batchRequest{Config: s.cfg.Layout}
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Diagrams) == 0 {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "diagrams is required"))
		return
	}
	if len(req.Diagrams) > s.cfg.MaxBatch {
		s.writeError(w, r, errs.New(errs.ErrCodeLimitExceeded,
			"batch has %d diagrams (max %d)", len(req.Diagrams), s.cfg.MaxBatch))
		return
	}
	for i, d := range req.Diagrams {
		if err := errs.ValidateLimits(len(d.Entities), len(d.Relationships), s.cfg.Limits); err != nil {
			s.writeError(w, r, errs.New(errs.ErrCodeLimitExceeded, "diagram %d: %s", i, errs.UserMessage(err)))
			return
		}
	}

	opts := pipeline.Options{
		Config:  req.Config,
		Formats: []string{pipeline.FormatJSON},
		Logger:  loggerFrom(ctx),
	}
	results, err := s.runner.LayoutBatch(ctx, req.Diagrams, opts, s.cfg.BatchJobs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := batchResponse{Layouts: make([]json.RawMessage, len(results))}
	for i, res := range results {
		artifacts, err := s.runner.Render(ctx, res, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Layouts[i] = artifacts[pipeline.FormatJSON]
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON body into v, enforcing the body size limit.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return errs.New(errs.ErrCodeLimitExceeded, "request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errs.New(errs.ErrCodeInvalidInput, "request body is empty")
		default:
			return errs.Wrap(errs.ErrCodeInvalidDiagram, err, "invalid request body: %v", err)
		}
	}
	return nil
}

func cacheStatus(info pipeline.CacheInfo) string {
	if info.LayoutHit && info.RenderHit {
		return "hit"
	}
	return "miss"
}
