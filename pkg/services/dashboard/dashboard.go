package dashboard

import (
	"context"
	"io"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/de-tools/cost-analyzer/pkg/store/report"
	"github.com/rs/zerolog"
)

const (
	PreviewRows    = 50
	ExportFilename = "filtered_report.csv"

	CostEmptyMessage    = "No data to display for Cost by Service."
	SavingsEmptyMessage = "No data to display for Potential Savings by Service."
)

// BuildView derives everything the dashboard shows from the full dataset.
// KPIs and the preview ignore the filter; charts and rows honor it.
func BuildView(ds domain.Dataset, f domain.Filter) domain.DashboardView {
	savingsRange := SavingsSliderRange(ds.Records)
	f.MinSavings = Clamp(f.MinSavings, savingsRange)
	f.Search = strings.TrimSpace(f.Search)

	filtered := ApplyFilter(ds.Records, f)

	view := domain.DashboardView{
		Source:    ds.Source,
		KPIs:      ComputeKPIs(ds.Records),
		Services:  AvailableServices(ds.Records),
		Filter:    f,
		Range:     savingsRange,
		ByService: GroupByService(filtered),
		Rows:      SortBySavings(filtered),
		Preview:   Preview(ds.Records, PreviewRows),
		TotalRows: len(ds.Records),
	}
	if len(filtered) == 0 {
		view.CostEmptyMsg = CostEmptyMessage
		view.SavingsEmptyMsg = SavingsEmptyMessage
	}
	return view
}

// Service resolves report sources for the HTTP layer. Requests without an
// explicit source fall back to defaultPath.
type Service struct {
	loader      *Loader
	defaultPath string
}

func NewService(loader *Loader, defaultPath string) *Service {
	return &Service{loader: loader, defaultPath: defaultPath}
}

func (s *Service) DefaultPath() string {
	return s.defaultPath
}

func (s *Service) Dataset(ctx context.Context, src domain.ReportSource) (domain.Dataset, error) {
	if src.Upload != "" {
		return s.loader.LoadUpload(src.Upload)
	}

	path := src.Path
	if strings.TrimSpace(path) == "" {
		path = s.defaultPath
	}
	ds, err := s.loader.LoadPath(path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("report not loaded")
		return domain.Dataset{}, err
	}
	return ds, nil
}

func (s *Service) View(ctx context.Context, src domain.ReportSource, f domain.Filter) (domain.DashboardView, error) {
	ds, err := s.Dataset(ctx, src)
	if err != nil {
		return domain.DashboardView{}, err
	}
	return BuildView(ds, f), nil
}

// Preview returns the first PreviewRows rows of the unfiltered dataset along
// with the dataset's full row count.
func (s *Service) Preview(ctx context.Context, src domain.ReportSource) ([]domain.ResourceCostRecord, int, error) {
	ds, err := s.Dataset(ctx, src)
	if err != nil {
		return nil, 0, err
	}
	return Preview(ds.Records, PreviewRows), len(ds.Records), nil
}

// Export writes the filtered rows, highest savings first, in report format.
func (s *Service) Export(ctx context.Context, src domain.ReportSource, f domain.Filter, w io.Writer) error {
	view, err := s.View(ctx, src, f)
	if err != nil {
		return err
	}
	return report.Write(w, view.Rows)
}

func (s *Service) Upload(ctx context.Context, data []byte) (string, error) {
	digest, err := s.loader.StoreUpload(data)
	if err != nil {
		return "", err
	}
	zerolog.Ctx(ctx).Info().Str("upload", digest).Int("bytes", len(data)).Msg("Report uploaded")
	return digest, nil
}

func (s *Service) Reload(ctx context.Context) {
	s.loader.Reload()
	zerolog.Ctx(ctx).Info().Msg("Report cache cleared")
}
