package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/400brands/brand-doctor/internal/domain/brand"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders a shareable summary of an analysis.
func Markdown(a *brand.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Brand Health Report: %s\n\n", escape(a.BrandName))
	fmt.Fprintf(&b, "**Score:** %d/100 (%s)  \n", a.Score, a.Medal)
	fmt.Fprintf(&b, "**Industry:** %s  \n", escape(a.Industry))
	if loc := a.Location.CountryName; loc != "" {
		if a.Location.City != "" {
			loc = a.Location.City + ", " + loc
		}
		fmt.Fprintf(&b, "**Location:** %s  \n", escape(loc))
	}
	if !a.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "**Generated:** %s\n", a.CreatedAt.Format("2 Jan 2006"))
	}
	fmt.Fprintf(&b, "\n## %s\n\n", a.Headline)
	if a.Summary != "" {
		b.WriteString(escape(a.Summary) + "\n\n")
	}

	writeMetrics(&b, "Free Metrics", a.FreeMetrics)
	writeMetrics(&b, "Premium Metrics", a.PaidMetrics)

	if len(a.Competitors) > 0 {
		b.WriteString("## Competitors\n\n| Name | Score | Rating | Reviews |\n|---|---|---|---|\n")
		for _, c := range a.Competitors {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %d |\n", cell(c.Name), c.Score, c.Rating, c.ReviewCount)
		}
		b.WriteString("\n")
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "%d. **%s** (%s): %s\n", r.Priority, escape(r.Title), r.Price, escape(r.Description))
		}
	}
	return b.String()
}

// HTML renders the Markdown summary through goldmark.
func HTML(a *brand.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(a)), &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMetrics(b *strings.Builder, heading string, cats []brand.BenchmarkCategory) {
	if len(cats) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, c := range cats {
		fmt.Fprintf(b, "### %s: %d%%\n\n", escape(c.Title), c.Score)
		if c.Locked {
			b.WriteString("_Unlock the full report to see this breakdown._\n\n")
			continue
		}
		for _, it := range c.Items {
			mark := " "
			if it.Present {
				mark = "x"
			}
			fmt.Fprintf(b, "- [%s] %s\n", mark, escape(it.Text))
		}
		if c.HasLeak() && c.MoneyLeak != "" {
			fmt.Fprintf(b, "\n> **Revenue leak:** %s\n", escape(c.MoneyLeak))
		}
		b.WriteString("\n")
	}
}

var mdEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", ">", "&gt;", "[", `\[`, "]", `\]`)

// escape keeps model text from injecting markup or raw HTML.
func escape(s string) string { return mdEscaper.Replace(s) }

func cell(s string) string { return strings.ReplaceAll(escape(s), "|", `\|`) }
