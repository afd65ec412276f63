package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cipherwen/pkg/article"
	"github.com/matzehuels/cipherwen/pkg/colorspec"
	"github.com/matzehuels/cipherwen/pkg/fingerprint"
	"github.com/matzehuels/cipherwen/pkg/grid"
	"github.com/matzehuels/cipherwen/pkg/pipeline"
)

// Palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders section headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight renders segments and other key values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders plain data.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// status prints msg after a styled icon.
func status(style lipgloss.Style, icon, msg string) {
	fmt.Println(style.Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printStats prints the article and question counts and whether every
// search was served from cache.
func printStats(stats pipeline.Stats, info pipeline.CacheInfo) {
	state := styleComputed.Render(iconFresh)
	if info.TextHit && info.AnswerHits == stats.Articles {
		state = styleCached.Render(iconCached)
	}
	sep := StyleDim.Render(" · ")
	fmt.Println("  " + strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d articles", stats.Articles)),
		StyleDim.Render(fmt.Sprintf("%d questions", stats.QAs)),
		state,
	}, sep))
}

// swatches renders each trit of t as a block in its grid color, a terminal
// preview of the image.
func swatches(t string, opts grid.Options) string {
	if len(opts.ColorMap) == 0 {
		opts.ColorMap = grid.DefaultColorMap()
	}
	var b strings.Builder
	for i := 0; i < len(t); i++ {
		hex := colorspec.Hex(opts.ColorFor(t[i]))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█"))
	}
	return b.String()
}

// fingerprintTable renders a fingerprint as a table of candidate → segment.
func fingerprintTable(title string, candidates []string, fp fingerprint.Fingerprint) string {
	rows := make([][]string, len(candidates))
	for i, c := range candidates {
		rows[i] = []string{strconv.Itoa(i), truncate(c, 40), fp.Segments[i]}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", title, "Segment").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 2:
				return StyleHighlight
			case col == 0:
				return StyleDim
			}
			return StyleValue
		})

	header := StyleDim.Render(fmt.Sprintf("position %d · length %d", fp.Position, fp.Length))
	return t.Render() + "\n  " + header
}

// printCipherTables prints the text fingerprint and every article's answer
// fingerprint.
func printCipherTables(result *pipeline.Result) {
	texts := make([]string, len(result.Articles))
	for i, a := range result.Articles {
		texts[i] = a.Text
	}
	fmt.Println(StyleTitle.Render("Articles"))
	fmt.Println(fingerprintTable("Text", texts, result.Text))

	for i, a := range result.Articles {
		fmt.Println()
		fmt.Println(StyleTitle.Render(fmt.Sprintf("Article %d answers", i)))
		fmt.Println(fingerprintTable("Answer", a.Answers(), result.Answers[i]))
	}
	fmt.Println()
}

// printArticles prints the parsed articles.
func printArticles(articles []article.Article) {
	for i, a := range articles {
		fmt.Println(StyleTitle.Render(fmt.Sprintf("Article %d", i)))
		printKeyValue("Text", truncate(a.Text, 60))
		for _, qa := range a.QAs {
			printKeyValue("Question", qa.Question)
			printKeyValue("Answer", qa.Answer)
		}
		fmt.Println(StyleDim.Render(strings.Repeat("─", 28)))
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
