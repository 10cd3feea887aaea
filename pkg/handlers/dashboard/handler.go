package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/de-tools/cost-analyzer/pkg/adapters"
	"github.com/de-tools/cost-analyzer/pkg/models/api"
	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/services/dashboard"
	"github.com/rs/zerolog"
)

const (
	maxUploadBytes = 32 << 20
	uploadField    = "file"
)

type Dashboard interface {
	DefaultPath() string
	View(ctx context.Context, src domain.ReportSource, f domain.Filter) (domain.DashboardView, error)
	Preview(ctx context.Context, src domain.ReportSource) ([]domain.ResourceCostRecord, int, error)
	Export(ctx context.Context, src domain.ReportSource, f domain.Filter, w io.Writer) error
	Upload(ctx context.Context, data []byte) (string, error)
	Reload(ctx context.Context)
}

type Handler struct {
	dashboard Dashboard
}

func NewHandler(d Dashboard) *Handler {
	return &Handler{dashboard: d}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := parseFilter(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	view, err := h.dashboard.View(ctx, parseSource(r), f)
	if err != nil {
		writeError(ctx, w, statusFor(err), err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapDomainViewToAPI(view))
}

func (h *Handler) PreviewReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, total, err := h.dashboard.Preview(ctx, parseSource(r))
	if err != nil {
		writeError(ctx, w, statusFor(err), err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.ReportPreview{
		Rows:      adapters.MapDomainRecordsToAPI(rows),
		TotalRows: total,
	})
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	f, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.dashboard.Export(ctx, parseSource(r), f, &buf); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dashboard.ExportFilename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error().Err(err).Msg("failed to write filtered report")
	}
}

func (h *Handler) UploadReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	digest, err := h.receiveUpload(w, r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, api.UploadResponse{Upload: digest})
}

func (h *Handler) ReloadReport(w http.ResponseWriter, r *http.Request) {
	h.dashboard.Reload(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) receiveUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", fmt.Errorf("invalid upload: %w", err)
	}

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		return "", fmt.Errorf("missing %q file in upload: %w", uploadField, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	return h.dashboard.Upload(r.Context(), data)
}

func statusFor(err error) int {
	if errors.Is(err, dashboard.ErrNoReport) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	logger := zerolog.Ctx(ctx)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(ctx, w, status, api.ErrorResponse{Error: err.Error()})
}
