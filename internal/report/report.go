package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resolverai/burnie-mindshare-sub012/internal/leaderboard"
)

// Builder renders run summaries from a leaderboard snapshot
type Builder struct {
	maxEntries int
	template   *template.Template
}

// New creates a new report builder
func New(maxEntries int) (*Builder, error) {
	tmpl, err := template.New("report").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Builder{
		maxEntries: maxEntries,
		template:   tmpl,
	}, nil
}

// Report is a compiled run summary ready for sending
type Report struct {
	Subject   string
	HTMLBody  string
	PlainBody string
	CreatedAt time.Time
}

// ReportData is the template data structure
type ReportData struct {
	Title   string
	Window  string
	Entries []EntryData
	Stats   StatsData
}

// EntryData represents one leaderboard row in the template
type EntryData struct {
	Rank           int
	Username       string
	AuthorID       string
	CompositeScore string
	MindShare      string
	Normalized     string
}

// StatsData contains run statistics
type StatsData struct {
	TotalEntries int
	TotalTop100  string
	TotalTop25   string
}

// Build creates a summary report from a ranked snapshot
func (b *Builder) Build(snap *leaderboard.Snapshot) (*Report, error) {
	entries := snap.Entries
	if len(entries) > b.maxEntries {
		entries = entries[:b.maxEntries]
	}

	data := ReportData{
		Title: "Weekly Yap Leaderboard",
		Window: fmt.Sprintf("%s – %s",
			snap.WindowStart.Format("Jan 2"), snap.WindowEnd.Format("Jan 2, 2006")),
		Entries: make([]EntryData, len(entries)),
		Stats: StatsData{
			TotalEntries: len(snap.Entries),
			TotalTop100:  fmt.Sprintf("%.2f", snap.TotalTop100),
			TotalTop25:   fmt.Sprintf("%.2f", snap.TotalTop25),
		},
	}

	for i := range entries {
		e := &entries[i]
		data.Entries[i] = EntryData{
			Rank:           i + 1,
			Username:       e.Username,
			AuthorID:       e.AuthorID,
			CompositeScore: fmt.Sprintf("%.2f", e.CompositeScore),
			MindShare:      fmt.Sprintf("%.4f%%", e.MindShare*100),
			Normalized:     fmt.Sprintf("%.4f%%", e.NormalizedMindShare*100),
		}
	}

	var htmlBuf bytes.Buffer
	if err := b.template.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return &Report{
		Subject:   fmt.Sprintf("Yap Leaderboard - %s", snap.GeneratedAt.Format("Jan 2")),
		HTMLBody:  htmlBuf.String(),
		PlainBody: buildPlainText(data),
		CreatedAt: snap.GeneratedAt,
	}, nil
}

func buildPlainText(data ReportData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s\n%s\n\n", data.Title, data.Window))

	for _, e := range data.Entries {
		buf.WriteString(fmt.Sprintf("%d. @%s  score=%s  mindshare=%s\n",
			e.Rank, e.Username, e.CompositeScore, e.MindShare))
	}

	buf.WriteString(fmt.Sprintf("\n%d authors ranked · top-100 total %s · top-25 total %s\n",
		data.Stats.TotalEntries, data.Stats.TotalTop100, data.Stats.TotalTop25))

	return buf.String()
}

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 20px; }
        h1 { color: #f59e0b; margin-bottom: 5px; }
        .window { color: #666; margin-bottom: 20px; }
        table { width: 100%; border-collapse: collapse; }
        th { text-align: left; color: #666; font-size: 12px; border-bottom: 2px solid #eee; padding: 6px 4px; }
        td { border-bottom: 1px solid #eee; padding: 8px 4px; }
        .rank { color: #999; width: 30px; }
        .handle { font-weight: bold; color: #333; }
        .score { color: #f59e0b; }
        .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; color: #999; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="window">{{.Window}}</div>

        <table>
            <tr><th>#</th><th>Author</th><th>Score</th><th>Mindshare</th><th>Normalized</th></tr>
            {{range .Entries}}
            <tr>
                <td class="rank">{{.Rank}}</td>
                <td class="handle">@{{.Username}}</td>
                <td class="score">{{.CompositeScore}}</td>
                <td>{{.MindShare}}</td>
                <td>{{.Normalized}}</td>
            </tr>
            {{end}}
        </table>

        <div class="footer">
            {{.Stats.TotalEntries}} authors ranked · Generated by burnie-mindshare
        </div>
    </div>
</body>
</html>`
