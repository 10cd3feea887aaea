package dashboard

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/services/dashboard"
	"github.com/de-tools/cost-analyzer/pkg/store/report"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"money":   report.Money,
			"percent": formatPercent,
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

const (
	startMessage = "Load your aws_resource_report.csv using the sidebar to begin."
	pathHint     = "Provide a valid path to aws_resource_report.csv"
)

type chartBar struct {
	Label string
	Value float64
	Share float64
	Width float64
}

type pageData struct {
	Path        string
	Upload      string
	Hint        string
	Message     string
	View        *domain.DashboardView
	Selected    map[string]bool
	CostBars    []chartBar
	SavingsBars []chartBar
	DownloadURL template.URL
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	src := parseSource(r)
	data := pageData{Path: src.Path, Upload: src.Upload}
	if data.Path == "" && data.Upload == "" {
		data.Path = h.dashboard.DefaultPath()
	}

	status := http.StatusOK
	f, err := parseFilter(r)
	if err != nil {
		status = http.StatusBadRequest
		data.Message = err.Error()
		h.render(w, r, status, data)
		return
	}

	view, err := h.dashboard.View(ctx, src, f)
	switch {
	case errors.Is(err, dashboard.ErrNoReport):
		data.Message = startMessage
		if src.Upload == "" {
			data.Hint = pathHint
		}
	case err != nil:
		logger.Error().Err(err).Msg("failed to build dashboard")
		status = http.StatusInternalServerError
		data.Message = err.Error()
	default:
		data.View = &view
		data.Selected = selectedServices(view)
		data.CostBars, data.SavingsBars = chartBars(view.ByService)
		data.DownloadURL = template.URL("/api/v1/report/download?" + filterQuery(src, view.Filter).Encode())
	}

	h.render(w, r, status, data)
}

// UploadPage accepts the sidebar upload form and redirects to the view of
// the uploaded report.
func (h *Handler) UploadPage(w http.ResponseWriter, r *http.Request) {
	digest, err := h.receiveUpload(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/?"+url.Values{paramUpload: {digest}}.Encode(), http.StatusSeeOther)
}

// ReloadPage clears the cache and returns to the same source.
func (h *Handler) ReloadPage(w http.ResponseWriter, r *http.Request) {
	h.dashboard.Reload(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	src := domain.ReportSource{Path: r.PostForm.Get(paramPath), Upload: r.PostForm.Get(paramUpload)}
	http.Redirect(w, r, "/?"+sourceQuery(src).Encode(), http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render dashboard")
	}
}

func selectedServices(view domain.DashboardView) map[string]bool {
	services := view.Filter.Services
	if services == nil {
		services = view.Services
	}
	return lo.SliceToMap(services, func(s string) (string, bool) { return s, true })
}

func chartBars(groups []domain.ServiceAggregate) (cost, savings []chartBar) {
	maxSavings := lo.Max(lo.Map(groups, func(g domain.ServiceAggregate, _ int) float64 {
		return g.PotentialSavings
	}))

	for _, g := range groups {
		cost = append(cost, chartBar{
			Label: g.Service,
			Value: g.EstimatedCost,
			Share: g.CostShare,
			Width: g.CostShare * 100,
		})

		bar := chartBar{Label: g.Service, Value: g.PotentialSavings}
		if maxSavings > 0 {
			bar.Width = g.PotentialSavings / maxSavings * 100
		}
		savings = append(savings, bar)
	}
	return cost, savings
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
