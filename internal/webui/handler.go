// Package webui serves the JSON API for rendering and printing images.
package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OpenPrinting/go-mfp/abstract"

	"github.com/mzyy94/pclraster/internal/config"
	"github.com/mzyy94/pclraster/internal/halftone"
	"github.com/mzyy94/pclraster/internal/imagesrc"
	"github.com/mzyy94/pclraster/internal/jetdirect"
	"github.com/mzyy94/pclraster/internal/pcl"
	"github.com/mzyy94/pclraster/internal/proof"
	"github.com/mzyy94/pclraster/internal/spool"
)

// maxImageBytes bounds uploaded images.
const maxImageBytes = 64 << 20

// SendFunc delivers an encoded job to a printer.
type SendFunc func(ctx context.Context, addr string, r io.Reader) (int64, error)

type handler struct {
	settings *config.Store // nil when persistence is disabled
	ht       pcl.Halftoner
	send     SendFunc
	status   *JobStatus

	mu          sync.RWMutex
	memSettings config.Settings // in-memory fallback when settings is nil
}

// NewHandler creates an HTTP handler for the API. Jobs are sent with
// jetdirect.Send.
func NewHandler(settings *config.Store) http.Handler {
	return newHandler(settings, jetdirect.Send)
}

func newHandler(settings *config.Store, send SendFunc) http.Handler {
	h := &handler{
		settings:    settings,
		ht:          halftone.New(),
		send:        send,
		status:      &JobStatus{},
		memSettings: config.DefaultSettings(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("GET /api/models", h.handleModels)
	mux.HandleFunc("GET /api/models/{model}", h.handleModel)
	mux.HandleFunc("GET /api/settings", h.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", h.handlePutSettings)
	mux.HandleFunc("POST /api/render", h.handleRender)
	mux.HandleFunc("POST /api/print", h.handlePrint)
	mux.HandleFunc("POST /api/proof", h.handleProof)
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// --- Printer models ---

type modelSummary struct {
	Model     int  `json:"model"`
	Color     bool `json:"color"`
	MaxWidth  int  `json:"maxWidth"`  // points
	MaxHeight int  `json:"maxHeight"` // points
}

type parameter struct {
	Values  []string `json:"values"`
	Default string   `json:"default,omitempty"`
}

type mediaInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`  // points
	Height int    `json:"height"` // points
	// Physical size in 1/100 mm.
	WidthDim  abstract.Dimension `json:"widthDim"`
	HeightDim abstract.Dimension `json:"heightDim"`
}

type modelDetail struct {
	modelSummary
	Margins    [4]int               `json:"margins"` // left, right, bottom, top
	Parameters map[string]parameter `json:"parameters"`
	Media      []mediaInfo          `json:"media"`
}

func summarize(c *pcl.Capability) modelSummary {
	w, h := c.Limits()
	return modelSummary{Model: c.Model, Color: c.IsColor(), MaxWidth: w, MaxHeight: h}
}

func (h *handler) handleModels(w http.ResponseWriter, r *http.Request) {
	models := pcl.Models()
	out := make([]modelSummary, 0, len(models))
	for _, m := range models {
		c, _ := pcl.Lookup(m)
		out = append(out, summarize(c))
	}
	writeJSON(w, out)
}

func (h *handler) handleModel(w http.ResponseWriter, r *http.Request) {
	model, err := strconv.Atoi(r.PathValue("model"))
	if err != nil {
		http.Error(w, "invalid model number", http.StatusBadRequest)
		return
	}
	c, ok := pcl.Lookup(model)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown model %d", model), http.StatusNotFound)
		return
	}
	resp := modelDetail{
		modelSummary: summarize(c),
		Margins:      [4]int{c.LeftMargin, c.RightMargin, c.BottomMargin, c.TopMargin},
		Parameters:   make(map[string]parameter),
	}
	for _, name := range pcl.ParameterNames {
		values := c.Parameters(name)
		if values == nil {
			continue
		}
		resp.Parameters[name] = parameter{Values: values, Default: c.DefaultParameter(name)}
	}
	for _, name := range c.Parameters(pcl.ParamPageSize) {
		m, ok := pcl.FindMediaSize(name)
		if !ok {
			continue
		}
		wd, ht := m.Dimensions()
		resp.Media = append(resp.Media, mediaInfo{
			Name: m.Name, Width: m.Width, Height: m.Height,
			WidthDim: wd, HeightDim: ht,
		})
	}
	writeJSON(w, resp)
}

// --- Status ---

type statusResponse struct {
	Job       JobStatus `json:"job"`
	Printer   string    `json:"printer,omitempty"`
	Model     int       `json:"model"`
	UpdatedAt string    `json:"updatedAt"`
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	s := h.current()
	writeJSON(w, statusResponse{
		Job:       h.status.Snapshot(),
		Printer:   s.PrinterAddr,
		Model:     s.Model,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Settings API ---

func (h *handler) current() config.Settings {
	if h.settings != nil {
		return h.settings.Get()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.memSettings
}

func (h *handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.current())
}

func (h *handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var s config.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.settings != nil {
		if err := h.settings.Update(s); err != nil {
			slog.Warn("settings save failed", "err", err)
			http.Error(w, "failed to save settings", http.StatusInternalServerError)
			return
		}
	} else {
		h.mu.Lock()
		h.memSettings = s
		h.mu.Unlock()
	}
	writeJSON(w, s)
}

// --- Jobs ---

// colorModes maps the go-mfp colour mode names accepted in colorMode.
var colorModes = map[string]abstract.ColorMode{
	"color":     abstract.ColorModeColor,
	"grayscale": abstract.ColorModeMono,
	"mono":      abstract.ColorModeMono,
	"binary":    abstract.ColorModeBinary,
}

// applyQuery overrides stored settings with per-request query values.
func applyQuery(s *config.Settings, q url.Values) error {
	if v := q.Get("model"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid model %q", v)
		}
		s.Model = m
	}
	for key, dst := range map[string]*string{
		"mediaSize":   &s.MediaSize,
		"mediaType":   &s.MediaType,
		"mediaSource": &s.MediaSource,
		"resolution":  &s.Resolution,
		"inkType":     &s.InkType,
		"output":      &s.Output,
		"orientation": &s.Orientation,
		"imageType":   &s.ImageType,
	} {
		if q.Has(key) {
			*dst = q.Get(key)
		}
	}
	if v := q.Get("colorMode"); v != "" {
		m, ok := colorModes[strings.ToLower(v)]
		if !ok {
			return fmt.Errorf("unknown color mode %q", v)
		}
		s.Output = pcl.OutputFromColorMode(m).String()
	}
	for key, dst := range map[string]*float64{"scaling": &s.Scaling, "density": &s.Density} {
		if v := q.Get(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s %q", key, v)
			}
			*dst = f
		}
	}
	return s.Validate()
}

// prepare decodes the uploaded image and resolves the job for it.
func (h *handler) prepare(w http.ResponseWriter, r *http.Request) (*pcl.Job, *imagesrc.Source, config.Settings, bool) {
	s := h.current()
	if err := applyQuery(&s, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, s, false
	}
	src, format, err := imagesrc.Decode(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, s, false
	}
	req, err := s.RequestFor(src.DPI())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, s, false
	}
	job, err := pcl.Resolve(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, nil, s, false
	}
	for _, warn := range job.Warnings {
		w.Header().Add("X-Pcl-Warning", warn.Error())
	}
	slog.Info("job prepared",
		"format", format,
		"width", src.Width(),
		"height", src.Height(),
		"model", job.Model,
		"resolution", job.ResolutionName,
		"warnings", len(job.Warnings),
	)
	return job, src, s, true
}

func (h *handler) encode(ctx context.Context, w io.Writer, job *pcl.Job, src *imagesrc.Source) error {
	enc, err := pcl.NewEncoder(w, job, h.ht)
	if err != nil {
		return err
	}
	return enc.PrintPage(ctx, src)
}

func (h *handler) handleRender(w http.ResponseWriter, r *http.Request) {
	job, src, _, ok := h.prepare(w, r)
	if !ok {
		return
	}
	format := spool.FormatRaw
	switch c := r.URL.Query().Get("compress"); c {
	case "":
	case "gzip":
		format = spool.FormatGzip
	case "zstd":
		format = spool.FormatZstd
	default:
		http.Error(w, fmt.Sprintf("unknown compression %q", c), http.StatusBadRequest)
		return
	}

	// Encode fully before answering so failures still get an error status.
	var buf bytes.Buffer
	zw, err := spool.NewWriter(&buf, format)
	if err == nil {
		err = h.encode(r.Context(), zw, job, src)
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		slog.Error("render failed", "model", job.Model, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.hp-PCL")
	switch format {
	case spool.FormatGzip:
		w.Header().Set("Content-Encoding", "gzip")
	case spool.FormatZstd:
		w.Header().Set("Content-Encoding", "zstd")
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

type printResponse struct {
	Printer  string   `json:"printer"`
	Bytes    int64    `json:"bytes"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *handler) handlePrint(w http.ResponseWriter, r *http.Request) {
	job, src, s, ok := h.prepare(w, r)
	if !ok {
		return
	}
	addr := s.PrinterAddr
	if addr == "" {
		http.Error(w, "no printer address configured", http.StatusBadRequest)
		return
	}
	// Jobs only go to the configured printer.
	if q := r.URL.Query().Get("printer"); q != "" && q != addr {
		slog.Warn("print to unconfigured printer refused", "printer", q, "configured", addr)
		http.Error(w, "printer is not the configured printer", http.StatusForbidden)
		return
	}
	if !h.status.Begin(job.Model, addr) {
		http.Error(w, "printer busy", http.StatusConflict)
		return
	}

	var buf bytes.Buffer
	if err := h.encode(r.Context(), &buf, job, src); err != nil {
		h.status.SetResult(err, 0)
		slog.Error("print encode failed", "model", job.Model, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	n, err := h.send(r.Context(), addr, &buf)
	h.status.SetResult(err, n)
	if err != nil {
		slog.Error("print failed", "printer", addr, "err", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := printResponse{Printer: addr, Bytes: n}
	for _, warn := range job.Warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}
	writeJSON(w, resp)
}

func (h *handler) handleProof(w http.ResponseWriter, r *http.Request) {
	job, src, _, ok := h.prepare(w, r)
	if !ok {
		return
	}
	data, err := proof.Generate(job, src)
	if err != nil {
		slog.Error("proof failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(data)
}
