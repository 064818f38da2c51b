package templates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// OverviewData is everything the overview page shows.
type OverviewData struct {
	Now       time.Time
	Tribute   *model.TributeConfig
	Agents    []*model.Agent
	Logs      []*model.ActivityLog
	Metrics   []*model.SystemMetric
	Integrity *model.IntegrityCheck
}

const overviewStyle = `body{font-family:system-ui,sans-serif;margin:2rem;background:#0f172a;color:#e2e8f0}
h1{font-size:1.4rem}h2{font-size:1.1rem;margin-top:2rem}
table{border-collapse:collapse;width:100%}td,th{padding:.35rem .6rem;border-bottom:1px solid #334155;text-align:left}
.badge{padding:.1rem .45rem;border-radius:.3rem;font-size:.8rem}
.green{background:#166534}.blue{background:#1e40af}.purple{background:#6b21a8}.yellow{background:#854d0e}.red{background:#991b1b}.gray{background:#475569}
.bar{background:#334155;height:.5rem;border-radius:.25rem}.bar>div{height:100%;border-radius:.25rem}
.bar-ok{background:#22c55e}.bar-warning{background:#eab308}.bar-critical{background:#ef4444}
svg polyline{fill:none;stroke:#38bdf8;stroke-width:2}`

// Overview renders the read-only status page served at "/".
func Overview(d OverviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		e := templ.EscapeString[string]

		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<title>FlowLand Steward</title><style>` + overviewStyle + `</style></head><body>`)
		b.WriteString(`<h1>FlowLand Steward</h1>`)

		if t := d.Tribute; t != nil {
			fmt.Fprintf(&b, `<h2>Tribute</h2><p><span class="badge %s">%s</span> `,
				ModeColor(t.Mode), e(t.Mode.DisplayName()))
			fmt.Fprintf(&b, `%d credits &middot; %d MB &middot; %d operations &middot; last ritual %s</p>`,
				t.CreditsAccrued, t.ResourceUsageMB, t.OperationsTracked,
				e(FormatDaysAgo(t.LastRitualDate, d.Now)))
		}

		if c := d.Integrity; c != nil {
			fmt.Fprintf(&b, `<h2>Integrity</h2><p>%s, score %d, %d issues (%s)</p>`,
				e(string(c.Status)), c.IntegrityScore, c.IssuesFound, e(FormatAge(c.Timestamp, d.Now)))
			fmt.Fprintf(&b, `<div class="bar"><div class="%s" style="width:%d%%"></div></div>`,
				ProgressBarClass(100-c.IntegrityScore), ProgressBarWidth(c.IntegrityScore))
		}

		b.WriteString(`<h2>Agents</h2><table><tr><th>Name</th><th>Endpoint</th><th>Status</th><th>Last active</th></tr>`)
		for _, a := range d.Agents {
			last := "never"
			if a.LastActive != nil {
				last = FormatAge(*a.LastActive, d.Now)
			}
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td><span class="badge %s">%s</span></td><td>%s</td></tr>`,
				e(a.Name), e(a.Endpoint), StatusColor(a.Status), e(string(a.Status)), e(last))
		}
		b.WriteString(`</table>`)

		if len(d.Metrics) > 0 {
			fmt.Fprintf(&b, `<h2>Operations</h2><svg viewBox="0 0 240 40" width="480" height="80"><polyline points="%s"/></svg>`,
				SparklinePolyline(d.Metrics, 240, 40))
		}

		byID := make(map[int64]*model.Agent, len(d.Agents))
		for _, a := range d.Agents {
			byID[a.ID] = a
		}
		b.WriteString(`<h2>Recent activity</h2><table>`)
		for _, l := range d.Logs {
			var agent *model.Agent
			if l.AgentID != nil {
				agent = byID[*l.AgentID]
			}
			fmt.Fprintf(&b, `<tr><td>%s</td><td><span class="badge %s">%s</span></td><td>%s</td></tr>`,
				FormatClock(l.Timestamp), AgentColor(agent), e(AgentTag(agent)), e(l.Message))
		}
		b.WriteString(`</table></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
