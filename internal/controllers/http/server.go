package httpctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
	"github.com/Agrid-Dev/heizlast/internal/logging"
	"github.com/Agrid-Dev/heizlast/internal/metrics"
	"github.com/Agrid-Dev/heizlast/internal/ports"
	"github.com/Agrid-Dev/heizlast/internal/report"
)

const maxUploadBytes = 10 << 20

type Server struct {
	svc     ports.BuildingService
	srv     *http.Server
	metrics *metrics.Metrics
	log     *slog.Logger
}

// New returns a runnable server.
func New(svc ports.BuildingService, addr string, m *metrics.Metrics, log *slog.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	mux := http.NewServeMux()
	s := &Server{svc: svc, metrics: m, log: log}

	// Read
	mux.HandleFunc("GET /v1", s.handleGet)
	mux.HandleFunc("GET /v1/export", s.handleExport)
	mux.HandleFunc("GET /v1/presets", s.handleListPresets)
	mux.HandleFunc("GET /v1/presets/{name}", s.handleGetPreset)

	// Write: one endpoint per input
	for _, f := range building.Fields {
		mux.HandleFunc("POST /v1/"+f.String(), s.handlePostField(f))
	}
	mux.HandleFunc("POST /v1/ridge_axis", s.handlePostRidgeAxis)
	mux.HandleFunc("POST /v1/preset", s.handlePostPreset)

	// Stateless calculations
	mux.HandleFunc("POST /v1/calc/simple", s.handleCalcSimple)
	mux.HandleFunc("POST /v1/calc/detailed", s.handleCalcDetailed)
	mux.HandleFunc("POST /v1/calc/batch", s.handleCalcBatch)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	s.log.Info("http listening", "addr", s.srv.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ---- Handlers ----

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request) {
	s.respondSnapshot(w)
}

func (s *Server) handlePostField(f building.Field) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postValue(s, w, r, func(v float64) error {
			return s.svc.Set(f, v)
		})
	}
}

func (s *Server) handlePostRidgeAxis(w http.ResponseWriter, r *http.Request) {
	// body: {"value": "B"}
	postValue(s, w, r, func(v string) error {
		axis, err := heatload.ParseRidgeAxis(v)
		if err != nil {
			return err
		}
		return s.svc.SetRidgeAxis(axis)
	})
}

func (s *Server) handlePostPreset(w http.ResponseWriter, r *http.Request) {
	postValue(s, w, r, func(v string) error {
		p := s.svc.ApplyPreset(v)
		if p.Name != v {
			s.log.Debug("preset resolved", "requested", v, "applied", p.Name)
		}
		return nil
	})
}

func (s *Server) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, heatload.Presets())
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	// Unknown names resolve to the default preset, never 404.
	writeJSON(w, http.StatusOK, heatload.LookupPreset(r.PathValue("name")))
}

func (s *Server) handleCalcSimple(w http.ResponseWriter, r *http.Request) {
	in := heatload.DefaultSimpleInput()
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, decodeErrMessage(err))
		return
	}
	res, err := heatload.Simple(in)
	if err != nil {
		s.metrics.Reject(metrics.KindSimple)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.Observe(metrics.KindSimple, res.PowerKW)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCalcDetailed(w http.ResponseWriter, r *http.Request) {
	in := heatload.DefaultDetailedInput()
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, decodeErrMessage(err))
		return
	}
	if err := in.Validate(); err != nil {
		s.metrics.Reject(metrics.KindDetailed)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := heatload.Detailed(in)
	if err != nil {
		s.metrics.Reject(metrics.KindDetailed)
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.Observe(metrics.KindDetailed, res.Breakdown.Total)
	writeJSON(w, http.StatusOK, heatload.NewDocument(in, res))
}

// handleCalcBatch accepts a multipart "file" (.csv or .xlsx) and answers
// in the format named by ?format= (json by default).
func (s *Server) handleCalcBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	in, err := report.ParseFormat(filepath.Ext(hdr.Filename))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := queryFormat(r, report.FormatJSON)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := report.ReadBatch(file, in)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, it := range items {
		if it.Err != nil {
			s.metrics.Reject(metrics.KindDetailed)
			continue
		}
		s.metrics.Observe(metrics.KindDetailed, it.Result.Breakdown.Total)
	}

	var buf bytes.Buffer
	if err := report.WriteBatch(&buf, out, items); err != nil {
		if errors.Is(err, report.ErrUnsupportedFormat) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("batch render failed", "format", out.String(), "error", err)
		writeErr(w, http.StatusInternalServerError, "batch render failed")
		return
	}
	writeFile(w, out, "heizlast-batch", buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := queryFormat(r, report.FormatJSON)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	snap := s.svc.Get()
	meta := report.Meta{BuildingID: snap.ID, Preset: snap.Preset, Advisories: snap.Result.Advisories}

	// Render into a buffer so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := report.Write(&buf, f, snap.Export(), meta); err != nil {
		s.log.Error("export failed", "format", f.String(), "error", err)
		writeErr(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeFile(w, f, "heizlast-"+snap.ID, buf.Bytes())
}

// ---- generic helpers ----
func (s *Server) respondSnapshot(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, s.svc.Get().Document())
}

func postValue[T any](s *Server, w http.ResponseWriter, r *http.Request, apply func(T) error) {
	dec := json.NewDecoder(r.Body)
	var req struct {
		Value *T `json:"value"`
	}
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == nil {
		writeErr(w, http.StatusBadRequest, "missing field 'value'")
		return
	}

	if err := apply(*req.Value); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondSnapshot(w)
}

func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeErrMessage keeps domain errors raised while decoding (an invalid
// ridge axis, say) and hides raw decoder detail otherwise.
func decodeErrMessage(err error) string {
	for _, sentinel := range []error{heatload.ErrInvalidRidgeAxis, heatload.ErrInvalidInput} {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}
	return "invalid json"
}

func queryFormat(r *http.Request, def report.Format) (report.Format, error) {
	q := r.URL.Query().Get("format")
	if q == "" {
		return def, nil
	}
	return report.ParseFormat(q)
}

func writeFile(w http.ResponseWriter, f report.Format, base string, b []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	if f != report.FormatJSON {
		w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename(base)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// writeJSON encodes before writing the header so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		b, _ = json.Marshal(map[string]string{"error": "encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(b, '\n'))
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
