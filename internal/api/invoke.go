package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/lamina-run/lamina/internal/event"
	"github.com/lamina-run/lamina/internal/host"
	"github.com/lamina-run/lamina/internal/model"
	"github.com/lamina-run/lamina/internal/response"
	"github.com/lamina-run/lamina/internal/runtime"
)

const maxBodySize = 1 << 20 // 1 MB

// handleInvoke runs a raw invocation envelope posted as JSON, the direct
// equivalent of the host calling handle(event, context).
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	var e event.Envelope
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, report, err := s.runner.HandleDetailed(r.Context(), e, s.hostContext(r))
	s.record(r, resp, report, err)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleProxy bridges a plain HTTP request into an API-Gateway-v2 shaped
// envelope, invokes it, and writes the response envelope back as a real
// HTTP response.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	e := envelopeFromRequest(r)

	resp, report, err := s.runner.HandleDetailed(r.Context(), e, s.hostContext(r))
	s.record(r, resp, report, err)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeEnvelope(w, resp)
}

// hostContext builds the per-request host context handed to the script.
func (s *Server) hostContext(r *http.Request) *host.Context {
	hc := &host.Context{
		RequestID: middleware.GetReqID(r.Context()),
		Logger:    s.logger,
	}
	if hc.RequestID == "" {
		hc.RequestID = model.NewID()
	}
	if deadline, ok := r.Context().Deadline(); ok {
		hc.Deadline = deadline
	}
	return hc
}

// record persists the invocation outcome for the history API. Recording is
// best-effort: a store failure is logged, never surfaced to the caller.
func (s *Server) record(r *http.Request, resp *response.Envelope, report *runtime.Report, invErr error) {
	if s.store == nil || report == nil {
		return
	}

	now := time.Now().UTC()
	durationMS := int(report.Duration.Milliseconds())
	inv := &model.Invocation{
		ID:         model.NewID(),
		ScriptPath: report.ScriptPath,
		Source:     report.Source,
		Method:     report.Method,
		Status:     report.Status,
		DurationMS: &durationMS,
		CreatedAt:  now.Add(-report.Duration),
		FinishedAt: &now,
	}
	if resp != nil {
		code := resp.StatusCode
		inv.StatusCode = &code
	}
	if invErr != nil {
		inv.Error = invErr.Error()
	}

	if err := s.store.CreateInvocation(r.Context(), inv); err != nil {
		s.logger.Error("record invocation", "error", err)
	}
}

// envelopeFromRequest converts an HTTP request into the API-Gateway-v2 event
// shape scripts already understand, so local requests and deployed requests
// look the same from inside a script.
func envelopeFromRequest(r *http.Request) event.Envelope {
	headers := make(map[string]any, len(r.Header))
	for k, v := range r.Header {
		headers[strings.ToLower(k)] = strings.Join(v, ",")
	}

	e := event.Envelope{
		"version":        "2.0",
		"rawPath":        r.URL.Path,
		"rawQueryString": r.URL.RawQuery,
		"headers":        headers,
		"requestContext": map[string]any{
			"http": map[string]any{
				"method":    r.Method,
				"path":      r.URL.Path,
				"protocol":  r.Proto,
				"sourceIp":  r.RemoteAddr,
				"userAgent": r.UserAgent(),
			},
		},
	}

	if r.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodySize))
		if err == nil && len(body) > 0 {
			e["body"] = string(body)
		}
	}

	return e
}

// writeEnvelope maps a response envelope onto a real HTTP response: status,
// headers, Set-Cookie entries, then the body (strings raw, everything else
// as JSON).
func (s *Server) writeEnvelope(w http.ResponseWriter, resp *response.Envelope) {
	for k, v := range resp.Headers {
		if sv, ok := v.(string); ok {
			w.Header().Set(k, sv)
		}
	}
	for _, cookie := range resp.Cookies {
		w.Header().Add("Set-Cookie", cookie)
	}
	w.WriteHeader(resp.StatusCode)

	switch body := resp.Body.(type) {
	case string:
		if _, err := io.WriteString(w, body); err != nil {
			s.logger.Error("write response body", "error", err)
		}
	default:
		if err := json.NewEncoder(w).Encode(body); err != nil {
			s.logger.Error("encode response body", "error", err)
		}
	}
}
