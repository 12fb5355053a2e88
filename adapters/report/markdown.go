package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"randsys/domain/core"
	"randsys/internal/errors"
)

// Markdown renders the report as a Markdown document with a run header, a
// search table and a per-step trajectory table
func Markdown(r Report) []byte {
	var b strings.Builder

	b.WriteString("# Randomness study\n\n")
	if m := r.Manifest; m != nil {
		fmt.Fprintf(&b, "- **Run:** `%s`\n", m.RunID)
		fmt.Fprintf(&b, "- **Seed:** `%d`\n", m.Seed)
		fmt.Fprintf(&b, "- **Config hash:** `%s`\n", core.Hash(m.ConfigHash).Short())
		fmt.Fprintf(&b, "- **Fingerprint:** `%s`\n", m.Fingerprint.Fingerprint.Short())
		fmt.Fprintf(&b, "- **Created:** %s\n", m.CreatedAt.Format(time.RFC3339))
		b.WriteString("\n")
	}

	if len(r.Searches) > 0 {
		b.WriteString("## Parameter search\n\n")
		b.WriteString("| Family | Candidates | Qualified | Best | Variance |\n")
		b.WriteString("|---|---:|---:|---|---:|\n")
		for _, s := range r.Searches {
			best, variance := "none", "-"
			if s.Result.Found() {
				best = "`" + s.Result.Descriptor().String() + "`"
				variance = formatFloat(s.Result.Variance)
			}
			fmt.Fprintf(&b, "| %s | %d | %d | %s | %s |\n",
				s.Family.DisplayName(), len(s.Result.Scores), s.Result.QualifiedCount(), best, variance)
		}
		b.WriteString("\n")

		if skipped := r.Skipped(); len(skipped) > 0 {
			b.WriteString("Families with no candidate at the entropy floor were not measured:\n\n")
			for _, kind := range skipped {
				fmt.Fprintf(&b, "- %s\n", kind.DisplayName())
			}
			b.WriteString("\n")
		}
	}

	if len(r.Trajectories) > 0 {
		b.WriteString("## Trajectories\n\n")
		b.WriteString("| Step |")
		for _, t := range r.Trajectories {
			fmt.Fprintf(&b, " %s entropy | %s variance |", t.Label, t.Label)
		}
		b.WriteString("\n|---:|")
		for range r.Trajectories {
			b.WriteString("---:|---:|")
		}
		b.WriteString("\n")

		for step := 0; step < r.steps(); step++ {
			fmt.Fprintf(&b, "| %d |", step+1)
			for _, t := range r.Trajectories {
				fmt.Fprintf(&b, " %s | %s |", cell(t.Entropy, step), cell(t.Variance, step))
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

// HTML renders the Markdown report to an HTML fragment
func HTML(r Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(Markdown(r), p, renderer)
}

// WriteFile writes the report to path: HTML for .html/.htm, Markdown otherwise
func WriteFile(path string, r Report) error {
	var content []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		content = HTML(r)
	default:
		content = Markdown(r)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.OutputError(path, err)
	}
	return nil
}

func cell(values []float64, step int) string {
	if step >= len(values) {
		return ""
	}
	return formatFloat(values[step])
}

