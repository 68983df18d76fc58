package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/thesavant42/wikitop/internal/models"
)

func sampleTable() models.Table {
	return models.Table{
		{Article: "Carnaval do Brasil", Views: 1234567, Rank: 1, URL: "https://pt.wikipedia.org/wiki/Carnaval_do_Brasil", Date: "2024-02-15"},
		{Article: "São Paulo", Views: 980, Rank: 2, URL: "https://pt.wikipedia.org/wiki/São_Paulo", Date: "2024-02-15"},
		{Article: "A|B", Views: 10, Rank: 1, URL: "https://pt.wikipedia.org/wiki/A|B", Date: "2024-02-16"},
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234567, "1.234.567"},
	}
	for _, tt := range tests {
		if got := FormatViews(tt.in); got != tt.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRowAlignsAccentedTitles(t *testing.T) {
	plain := formatRow("1", "Sao Paulo", "10", "u")
	accented := formatRow("1", "São Paulo", "10", "u")
	if len([]rune(plain)) != len([]rune(accented)) {
		t.Errorf("rows differ in width:\n%s\n%s", plain, accented)
	}

	long := formatRow("1", strings.Repeat("x", 100), "10", "u")
	if !strings.Contains(long, "...") {
		t.Errorf("long title not truncated: %s", long)
	}
}

func TestPrintArticleTable(t *testing.T) {
	var buf bytes.Buffer
	PrintArticleTable(&buf, sampleTable())
	out := buf.String()

	for _, want := range []string{"Carnaval do Brasil", "1.234.567", "2024-02-15", "2024-02-16"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
	if strings.Count(out, "2024-02-15") != 1 {
		t.Errorf("date divider should appear once per day")
	}

	buf.Reset()
	PrintArticleTable(&buf, nil)
	if !strings.Contains(buf.String(), "No data") {
		t.Errorf("empty table output = %q", buf.String())
	}
}

func TestPrintAbsent(t *testing.T) {
	var buf bytes.Buffer
	PrintAbsent(&buf, models.DayResult{
		Date:   civil.Date{Year: 2024, Month: time.February, Day: 3},
		Absent: models.AbsentThrottled,
	})
	if !strings.Contains(buf.String(), "2024-02-03") || !strings.Contains(buf.String(), "too many requests") {
		t.Errorf("PrintAbsent() = %q", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleTable())
	out := buf.String()
	if !strings.Contains(out, "Summary:") || !strings.Contains(out, "3 articles across 2 day(s)") {
		t.Errorf("PrintSummary() = %q", out)
	}
	if !strings.Contains(out, "1.235.557 views") {
		t.Errorf("PrintSummary() total views missing: %q", out)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, "--from is required")
	if !strings.Contains(buf.String(), "Error: --from is required") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestGenerateMarkdownReport(t *testing.T) {
	md := GenerateMarkdownReport("Top articles", sampleTable())

	if !strings.HasPrefix(md, "# Top articles\n") {
		t.Errorf("missing title: %q", md)
	}
	if !strings.Contains(md, "| 2024-02-15 | 1 | [Carnaval do Brasil](https://pt.wikipedia.org/wiki/Carnaval_do_Brasil) | 1.234.567 |") {
		t.Errorf("unexpected row formatting:\n%s", md)
	}
	if !strings.Contains(md, `A\|B`) {
		t.Errorf("pipe not escaped:\n%s", md)
	}

	if got := GenerateMarkdownReport("Empty", nil); !strings.Contains(got, "No data") {
		t.Errorf("empty report = %q", got)
	}
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in      string
		want    civil.Date
		wantErr bool
	}{
		{"2024-02-16", civil.Date{Year: 2024, Month: time.February, Day: 16}, false},
		{" 2024-02-16\x00 ", civil.Date{Year: 2024, Month: time.February, Day: 16}, false},
		{"", civil.Date{}, true},
		{"16/02/2024", civil.Date{}, true},
		{"2024-02-30", civil.Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateInput(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateInput(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDateInput(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
