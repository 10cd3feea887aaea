package dashboard

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/cost-analyzer/pkg/models/domain"
	"github.com/samber/lo"
)

const (
	paramPath        = "path"
	paramUpload      = "upload"
	paramService     = "service"
	paramMinSavings  = "min_savings"
	paramSearch      = "search"
	paramOnlySavings = "only_savings"
)

func parseSource(r *http.Request) domain.ReportSource {
	q := r.URL.Query()
	return domain.ReportSource{
		Path:   strings.TrimSpace(q.Get(paramPath)),
		Upload: strings.TrimSpace(q.Get(paramUpload)),
	}
}

// parseFilter reads the dashboard controls. Any "service" parameter makes the
// selection explicit; blank values are dropped, so "?service=" selects none.
func parseFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	var f domain.Filter

	if values, ok := q[paramService]; ok {
		f.Services = lo.Filter(values, func(s string, _ int) bool {
			return strings.TrimSpace(s) != ""
		})
	}

	if raw := strings.TrimSpace(q.Get(paramMinSavings)); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Filter{}, fmt.Errorf("invalid '%s' value: %q", paramMinSavings, raw)
		}
		f.MinSavings = v
	}

	if raw := strings.TrimSpace(q.Get(paramOnlySavings)); raw != "" {
		v, err := parseBool(raw)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid '%s' value: %q", paramOnlySavings, raw)
		}
		f.OnlyWithSavings = v
	}

	f.Search = strings.TrimSpace(q.Get(paramSearch))
	return f, nil
}

// parseBool also accepts the "on" value browsers send for checkboxes.
func parseBool(s string) (bool, error) {
	if strings.EqualFold(s, "on") {
		return true, nil
	}
	return strconv.ParseBool(s)
}

func sourceQuery(src domain.ReportSource) url.Values {
	q := url.Values{}
	if src.Upload != "" {
		q.Set(paramUpload, src.Upload)
	} else if src.Path != "" {
		q.Set(paramPath, src.Path)
	}
	return q
}

func filterQuery(src domain.ReportSource, f domain.Filter) url.Values {
	q := sourceQuery(src)
	if f.Services != nil {
		q[paramService] = append([]string{""}, f.Services...)
	}
	if f.OnlyWithSavings {
		q.Set(paramOnlySavings, "true")
	}
	if f.MinSavings > 0 {
		q.Set(paramMinSavings, strconv.FormatFloat(f.MinSavings, 'f', -1, 64))
	}
	if f.Search != "" {
		q.Set(paramSearch, f.Search)
	}
	return q
}
