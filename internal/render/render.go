// Package render turns a pipeline result into a styled terminal report.
// It only reads the structures it is given.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"github.com/vadiminshakov/marketpulse/internal/services/market/analysis"
	"github.com/vadiminshakov/marketpulse/internal/services/pipeline"
)

const recentBarRows = 10

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)

	dimStyle = lipgloss.NewStyle().Foreground(subtle)

	regimeColors = map[string]lipgloss.Color{
		"blue":   lipgloss.Color("27"),
		"cyan":   lipgloss.Color("45"),
		"gray":   lipgloss.Color("245"),
		"orange": lipgloss.Color("214"),
		"red":    lipgloss.Color("196"),
	}

	labelOrder = []domain.VolumeLabel{
		domain.VolumeVeryLow,
		domain.VolumeLow,
		domain.VolumeModerate,
		domain.VolumeHigh,
		domain.VolumeVeryHigh,
	}
)

// Report renders the analytical dataset for one instrument. summary may be
// nil when the series was too short for the supplemental analyzer.
func Report(pair domain.Pair, result *pipeline.Result, summary *analysis.Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("MARKET PULSE  %s", pair.String())))
	b.WriteString("\n")

	if len(result.Bars) == 0 {
		b.WriteString(dimStyle.Render("no data\n"))
		return b.String()
	}

	last := result.Bars[len(result.Bars)-1]
	b.WriteString(sectionStyle.Render("LATEST BAR"))
	b.WriteString(fmt.Sprintf("\n%s  close %.4f  volume %.2f  macd %.4f  signal %.4f  hist %.4f\n",
		last.Label.Format("2006-01-02"), last.Close, last.Volume, last.MACD, last.Signal, last.Histogram))
	if summary != nil {
		b.WriteString(fmt.Sprintf("RSI14 %.2f  trend %s\n", summary.RSI14, summary.Trend.Title()))
	}

	b.WriteString(sectionStyle.Render("VOLUME REGIMES (recent)"))
	b.WriteString("\n")
	bars := domain.Tail(result.Bars, recentBarRows)
	classifications := result.Classifications
	if len(classifications) > len(bars) {
		classifications = classifications[len(classifications)-len(bars):]
	}
	// both slices end at the most recent bar, so align them from the back
	pad := len(bars) - len(classifications)
	for i, bar := range bars {
		line := fmt.Sprintf("%s  quote volume %16.2f", bar.Label.Format("2006-01-02"), bar.VolumeQuote)
		if i >= pad {
			c := classifications[i-pad]
			badge := lipgloss.NewStyle().Foreground(regimeColors[c.ColorTag]).Bold(true).Render(c.Label.Title())
			line = fmt.Sprintf("%s  %s  %s", line, badge, dimStyle.Render(c.Sentiment))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("THRESHOLDS"))
	b.WriteString(fmt.Sprintf("\n%.2f / %.2f / %.2f / %.2f\n",
		result.Thresholds.T0, result.Thresholds.T1, result.Thresholds.T2, result.Thresholds.T3))

	periods := make([]int, 0, len(result.Shares))
	for period := range result.Shares {
		periods = append(periods, period)
	}
	sort.Ints(periods)
	for _, period := range periods {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("REGIME DISTRIBUTION, LAST %d DAYS", period)))
		b.WriteString("\n")
		for _, label := range labelOrder {
			share, ok := result.Shares[period][label]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("%-9s %6.2f%%\n", label.Title(), share))
		}
	}

	b.WriteString(sectionStyle.Render("DATA QUALITY"))
	b.WriteString(fmt.Sprintf("\nmissing %d  duplicates %d  zero-volume days %d  price anomalies %d\n",
		result.Quality.MissingValues, result.Quality.DuplicateRows,
		result.Quality.ZeroVolumeDays, result.Quality.PriceAnomalies))

	b.WriteString(sectionStyle.Render("MOMENTUM SIGNALS"))
	b.WriteString("\n")
	if len(result.Signals) == 0 {
		b.WriteString(dimStyle.Render("none\n"))
	}
	for _, s := range result.Signals {
		b.WriteString(fmt.Sprintf("%s: %s\n", s.Title(), s.Description()))
	}

	return b.String()
}
