package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/docintake/internal/config"
	"github.com/kirillkom/docintake/internal/core/domain"
	"github.com/kirillkom/docintake/internal/core/ports"
	"github.com/kirillkom/docintake/internal/observability/metrics"
)

const serviceName = "docintake-api"

type Router struct {
	cfg       config.Config
	processor ports.DocumentProcessor
	history   ports.HistoryReader
	metrics   *metrics.APIMetrics
}

func NewRouter(
	cfg config.Config,
	processor ports.DocumentProcessor,
	history ports.HistoryReader,
	m *metrics.APIMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		processor: processor,
		history:   history,
		metrics:   m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/process-file", rt.processFile)
	mux.HandleFunc("/process-text", rt.processText)
	mux.HandleFunc("/history", rt.getHistory)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) processFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	start := time.Now()
	res, err := rt.processor.ProcessFile(r.Context(), fileHeader.Filename, content)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), errorMessage(err))
		return
	}

	rt.observe(res, "process-file", time.Since(start))
	writeJSON(w, http.StatusOK, mergeResponse(res))
}

func (rt *Router) processText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	content := r.PostFormValue("content")
	if strings.TrimSpace(content) == "" {
		writeError(w, http.StatusBadRequest, "form field 'content' is required")
		return
	}

	start := time.Now()
	res, err := rt.processor.ProcessText(r.Context(), content)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), errorMessage(err))
		return
	}

	rt.observe(res, "process-text", time.Since(start))
	writeJSON(w, http.StatusOK, mergeResponse(res))
}

func (rt *Router) getHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	entries, err := rt.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), errorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// mergeResponse flattens the extraction record's top-level fields into the
// response next to the classification, with a success flag. The JSON
// failure shape carries its own status key, which deliberately overrides
// the flag.
func mergeResponse(res *ports.ProcessResult) map[string]any {
	merged := map[string]any{
		"status":         "success",
		"classification": res.Classification,
	}

	raw, err := json.Marshal(res.Record)
	if err != nil {
		return merged
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return merged
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (rt *Router) observe(res *ports.ProcessResult, endpoint string, duration time.Duration) {
	if rt.metrics == nil {
		return
	}
	_, failed := res.Record.(domain.FailureRecord)
	rt.metrics.RecordProcessed(serviceName, string(res.Classification.Format), res.Classification.Intent, failed, endpoint, duration)
	rt.metrics.SetHistoryEntries(res.Entry.ID)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedEncoding):
		return "Invalid file encoding"
	default:
		return err.Error()
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
