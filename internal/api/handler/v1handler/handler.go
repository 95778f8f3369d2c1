// Package v1handler implements the v1 HTTP endpoints: listing the columns of
// an uploaded CSV and returning the uploaded CSV with its URL column resolved.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"unshortener/internal/config"
	"unshortener/internal/unshortener"
	"unshortener/pkg/logger"
	"unshortener/pkg/serrors"
)

const (
	// FormFileField is the multipart field carrying the uploaded CSV.
	FormFileField = "file"
	// DefaultFilename names raw-body uploads that do not pass ?filename=.
	DefaultFilename = "upload.csv"
	// OutputPrefix is prepended to the uploaded file name for the download.
	OutputPrefix = "unshortened_"
)

// Deps are the services the handler delegates to.
type Deps struct {
	Unshortener unshortener.Unshortener
}

// Options configure request handling.
type Options struct {
	// MaxUploadBytes limits the request body size.
	MaxUploadBytes int64
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{MaxUploadBytes: cfg.HTTP.MaxUploadBytes}
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	return &Handler{deps: deps, options: options}
}

// Routes returns the v1 router. It is meant to be mounted under /v1.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/columns", h.Columns)
	r.Post("/unshorten", h.Unshorten)

	return r
}

// ColumnsResponse is the body returned by Columns.
type ColumnsResponse struct {
	Columns []string `json:"columns"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Kind names the semantic error kind for client errors, e.g. NO_HEADER.
	Kind string `json:"kind,omitempty"`
}

// Columns returns the header row of the uploaded CSV so a client can pick
// the column holding the URLs.
func (h *Handler) Columns(w http.ResponseWriter, r *http.Request) {
	body, _, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(r.Context(), w, err)

		return
	}

	header, err := h.deps.Unshortener.Header(body)
	if err != nil {
		h.writeError(r.Context(), w, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, ColumnsResponse{Columns: header})
}

// Unshorten resolves the selected column of the uploaded CSV and returns the
// result as a CSV attachment named after the upload. The column is selected
// with ?column=<index> or ?columnName=<header name>.
func (h *Handler) Unshorten(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, filename, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	column, err := h.selectColumn(r, body)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	ctx = logger.WithFields(ctx, zap.String("filename", filename))
	out, err := h.deps.Unshortener.Transform(ctx, body, column)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": OutputPrefix + filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

func (h *Handler) selectColumn(r *http.Request, body []byte) (int, error) {
	q := r.URL.Query()
	if raw := q.Get("column"); raw != "" {
		column, err := strconv.Atoi(raw)
		if err != nil {
			return 0, serrors.Wrap(serrors.ErrBadRequest, err, "invalid column")
		}

		return column, nil
	}

	if name := q.Get("columnName"); name != "" {
		header, err := h.deps.Unshortener.Header(body)
		if err != nil {
			return 0, fmt.Errorf("could not read header: %w", err)
		}

		return unshortener.ColumnByName(header, name)
	}

	return 0, serrors.With(serrors.ErrBadRequest, "column or columnName query parameter is required")
}

// readUpload returns the uploaded CSV and its base file name. Multipart
// requests carry the file in FormFileField; any other request carries the CSV
// as the raw body.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.options.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		f, fh, err := r.FormFile(FormFileField)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, "", err
			}

			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "could not read %q form file", FormFileField)
		}
		defer func() {
			_ = f.Close()
		}()

		body, err := io.ReadAll(f)
		if err != nil {
			return nil, "", fmt.Errorf("could not read form file: %w", err)
		}

		return body, baseName(fh.Filename), nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("could not read request body: %w", err)
	}

	return body, baseName(r.URL.Query().Get("filename")), nil
}

func baseName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return DefaultFilename
	}

	return name
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeJSON(ctx, w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload is too large"})
	case serrors.IsClientError(err):
		resp := ErrorResponse{Error: err.Error()}
		if k := serrors.KindOf(err); k != nil {
			resp.Kind = k.Error()
		}
		writeJSON(ctx, w, http.StatusBadRequest, resp)
	default:
		logger.Error(ctx, "could not handle request", zap.Error(err))
		writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not encode response", zap.Error(err))
	}
}
