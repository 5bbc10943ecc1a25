package view

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"
	"github.com/msomdec/dataproc/internal/domain"
)

// DashboardPage renders the ops dashboard shell. The analytics panel is
// populated and kept live by the /analytics/stream SSE endpoint.
func DashboardPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Data Processing Service</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-top: 0.5rem; }
td, th { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>Data Processing Service</h1>
<p>Live analytics over all processed users. Updates stream in automatically.</p>
<div id="analytics-panel" data-on-load="@get('/analytics/stream')">
<p>Loading analytics&hellip;</p>
</div>
</body>
</html>`)
		return err
	})
}

// AnalyticsPanel renders the analytics summary fragment patched into the
// dashboard over SSE.
func AnalyticsPanel(summary domain.AnalyticsSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<h2>Totals</h2>
<table>
<tr><th>Total users</th><td>%d</td></tr>
<tr><th>Average age</th><td>%.2f</td></tr>
<tr><th>Processed since start</th><td>%d</td></tr>
<tr><th>Deleted since start</th><td>%d</td></tr>
<tr><th>Avg processing time (ms)</th><td>%.3f</td></tr>
</table>`,
			summary.TotalUsers,
			summary.AverageAge,
			summary.ProcessingStats.TotalProcessed,
			summary.ProcessingStats.TotalDeleted,
			summary.ProcessingStats.AvgProcessingTimeMs,
		)

		io.WriteString(w, "<h2>Age distribution</h2><table>")
		for _, cat := range []domain.AgeCategory{domain.AgeCategoryMinor, domain.AgeCategoryAdult, domain.AgeCategorySenior} {
			if count, ok := summary.AgeDistribution[cat]; ok {
				fmt.Fprintf(w, "<tr><th>%s</th><td>%d</td></tr>", templ.EscapeString(string(cat)), count)
			}
		}
		io.WriteString(w, "</table>")

		io.WriteString(w, "<h2>Email domains</h2><table>")
		for _, name := range sortedDomains(summary.DomainDistribution) {
			fmt.Fprintf(w, "<tr><th>%s</th><td>%d</td></tr>", templ.EscapeString(name), summary.DomainDistribution[name])
		}
		_, err := io.WriteString(w, "</table>")
		return err
	})
}

func sortedDomains(dist map[string]int) []string {
	names := make([]string, 0, len(dist))
	for name := range dist {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
