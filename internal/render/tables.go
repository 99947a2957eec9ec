package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/pkg/core/health"
	"gopkg.in/yaml.v3"
)

// tokenRecord is the serialized form of a token
type tokenRecord struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Offset int    `json:"offset" yaml:"offset"`
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
}

// Tokens renders a token stream in the given format
func Tokens(tokens []moteparser.Token, format Format) (string, error) {
	switch format {
	case FormatTable:
		t := newTable().Headers("#", "OFFSET", "KIND", "TEXT")
		for i, tok := range tokens {
			t.Row(strconv.Itoa(i), strconv.Itoa(tok.Offset), tok.Kind.String(), tokenText(tok))
		}
		return t.String(), nil
	case FormatPlain:
		var sb strings.Builder
		for i, tok := range tokens {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%d\t%s\t%s", tok.Offset, tok.Kind, tokenText(tok))
		}
		return sb.String(), nil
	case FormatJSON, FormatYAML:
		records := make([]tokenRecord, len(tokens))
		for i, tok := range tokens {
			records[i] = tokenRecord{Kind: tok.Kind.String(), Text: tok.Text, Offset: tok.Offset}
		}
		return marshal(records, format)
	default:
		return "", fmt.Errorf("format %q not supported for tokens", format)
	}
}

func tokenText(tok moteparser.Token) string {
	if tok.Kind == moteparser.StringLiteral {
		return strconv.Quote(tok.Text)
	}
	return tok.Text
}

// History renders recorded runs, newest first as returned by the store
func History(runs []*history.Run, format Format) (string, error) {
	switch format {
	case FormatTable:
		if len(runs) == 0 {
			return MutedStyle.Render("no runs recorded"), nil
		}
		t := newTable().Headers("ID", "TIME", "ORIGIN", "OP", "NAME", "RESULT", "TOKENS", "NODES", "DURATION")
		for _, run := range runs {
			t.Row(
				shortID(run.ID),
				run.Timestamp.Local().Format("2006-01-02 15:04:05"),
				string(run.Origin),
				run.Operation,
				run.Name,
				result(run),
				strconv.Itoa(run.Tokens),
				strconv.Itoa(run.Nodes),
				run.Duration.Round(time.Microsecond).String(),
			)
		}
		return t.String(), nil
	case FormatJSON, FormatYAML:
		return marshal(runs, format)
	default:
		return "", fmt.Errorf("format %q not supported for history", format)
	}
}

// HistoryStats renders the store summary
func HistoryStats(stats *history.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "runs:     %d\n", stats.Total)
	fmt.Fprintf(&sb, "failures: %d\n", stats.Failures)
	if !stats.LastRun.IsZero() {
		fmt.Fprintf(&sb, "last run: %s\n", stats.LastRun.Local().Format(time.RFC3339))
	}
	if len(stats.ByCode) > 0 {
		t := newTable().Headers("CODE", "COUNT")
		for _, code := range sortedKeys(stats.ByCode) {
			t.Row(code, strconv.FormatInt(stats.ByCode[code], 10))
		}
		sb.WriteString(t.String())
	}
	return strings.TrimRight(sb.String(), "\n")
}

// HealthReport renders a health report as a status table
func HealthReport(report *health.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s: %s\n", report.Service, report.Version, statusText(report.Status))

	t := newTable().Headers("CHECK", "STATUS", "MESSAGE", "DURATION")
	for _, c := range report.Checks {
		t.Row(c.Name, string(c.Status), c.Message, c.Duration.Round(time.Microsecond).String())
	}
	sb.WriteString(t.String())
	return sb.String()
}

func statusText(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return OKStyle.Render(string(s))
	case health.StatusDegraded:
		return CaretStyle.Render(string(s))
	default:
		return FailStyle.Render(string(s))
	}
}

func result(run *history.Run) string {
	if run.OK {
		return OKStyle.Render("ok")
	}
	return FailStyle.Render(run.ErrorCode)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func marshal(v any, format Format) (string, error) {
	if format == FormatYAML {
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
