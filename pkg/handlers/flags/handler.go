package flags

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/risk-flags/pkg/adapters"
	"github.com/de-tools/risk-flags/pkg/models/api"
	"github.com/de-tools/risk-flags/pkg/models/domain"
	"github.com/de-tools/risk-flags/pkg/services/document"
	"github.com/de-tools/risk-flags/pkg/services/rules"
	"github.com/rs/zerolog"
)

const (
	defaultMaxUploadBytes = 5 << 20
	uploadField           = "file"
	resultParam           = "result"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Handler struct {
	engine         rules.Engine
	maxUploadBytes int64
}

func NewHandler(engine rules.Engine, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		engine:         engine,
		maxUploadBytes: maxUploadBytes,
	}
}

type resultRow struct {
	Name        string
	Value       int
	Label       string
	Description string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", map[string]any{
		"MaxUploadMB": h.maxUploadBytes >> 20,
	})
}

// Submit evaluates an uploaded document and redirects to the result page
// with the flags encoded in the query string.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Warn().Int64("limit", maxErr.Limit).Msg("upload too large")
			http.Error(w, fmt.Sprintf("file too large, max %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		logger.Debug().Err(err).Msg("no file in upload")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	doc, err := document.Decode(file, document.FormatFromFilename(header.Filename))
	if err != nil {
		logger.Warn().
			Err(err).
			Str("filename", header.Filename).
			Msg("failed to decode uploaded document")
		http.Error(w, fmt.Sprintf("invalid document: %v", err), http.StatusBadRequest)
		return
	}

	flags := adapters.MapFlagsDomainToApi(h.engine.Evaluate(doc))
	encoded, err := json.Marshal(flags)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode flags")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info().
		Str("filename", header.Filename).
		Int("statements", len(doc.Financials)).
		Msg("document evaluated")

	http.Redirect(w, r, "/result?"+url.Values{resultParam: {string(encoded)}}.Encode(), http.StatusSeeOther)
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(resultParam)
	if raw == "" {
		raw = "{}"
	}

	var flags api.Flags
	if err := json.Unmarshal([]byte(raw), &flags); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("malformed result parameter")
		http.Error(w, "malformed result parameter", http.StatusBadRequest)
		return
	}

	h.render(w, r, "result.html", map[string]any{
		"Rows": resultRows(flags),
	})
}

func resultRows(flags api.Flags) []resultRow {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]resultRow, 0, len(names))
	for _, name := range names {
		f := domain.Flag(flags[name])
		rows = append(rows, resultRow{
			Name:        name,
			Value:       int(f),
			Label:       f.String(),
			Description: f.Description(),
		})
	}
	return rows
}

// Evaluate is the JSON API. It accepts a multipart upload or the document as
// the request body; ?explain=true adds the figures behind each flag.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	body, format, err := h.documentSource(r)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	if closer, ok := body.(io.Closer); ok {
		defer closer.Close()
	}

	doc, err := document.Decode(body, format)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))
	var response any
	if explain {
		response = adapters.MapEvaluationDomainToApi(h.engine.Explain(doc))
	} else {
		response = adapters.MapFlagsDomainToApi(h.engine.Evaluate(doc))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode evaluation")
	}
}

func (h *Handler) documentSource(r *http.Request) (io.Reader, document.Format, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile(uploadField)
		if err != nil {
			return nil, "", fmt.Errorf("missing %q upload field: %w", uploadField, err)
		}
		return file, document.FormatFromFilename(header.Filename), nil
	}

	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return nil, "", err
	}
	return r.Body, format, nil
}

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	response := api.RulesResponse{
		Rules:  h.engine.Rules(),
		Legend: adapters.MapFlagLegend(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode rules")
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("template", name).
			Msg("failed to render page")
	}
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zerolog.Ctx(r.Context()).Warn().
		Err(err).
		Int("status", status).
		Msg("request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: err.Error()})
}
