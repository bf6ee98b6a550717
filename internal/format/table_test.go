package format

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	table := NewTable("Date", "Path", "Saved", "Status")
	table.AddRow("2021-01-01", "/article/file.txt", "0.00", "SUCCESS")

	var sb strings.Builder
	if err := table.Render(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, rule and one data row, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Date") || !strings.Contains(lines[0], "Status") {
		t.Fatalf("missing headers: %s", lines[0])
	}
	if !strings.Contains(lines[2], "/article/file.txt") || !strings.Contains(lines[2], "SUCCESS") {
		t.Fatalf("missing row cells: %s", lines[2])
	}
}

func TestRenderPadsShortRows(t *testing.T) {
	table := NewTable("Name", "Value")
	table.AddRow("only-name")

	var sb strings.Builder
	if err := table.Render(&sb); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "only-name") {
		t.Fatalf("missing padded row: %s", sb.String())
	}
}
