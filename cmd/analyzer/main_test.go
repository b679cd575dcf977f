package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"1.json": `{"title":"The Wire","genre":"Crime, Drama","rating":9.3,"year":2002}`,
		"2.json": `[{"title":"Dark","genre":"Sci-Fi, Drama","rating":8.7,"year":2017},{"title":"Lost","genre":"Drama","rating":8.3,"year":2004}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestStatsCommand(t *testing.T) {
	dir := writeFixtures(t)
	xmlPath := filepath.Join(t.TempDir(), "out.xml")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"stats", "--dir", dir, "--by", "genre", "--workers", "2", "--xml", xmlPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := "Drama: 3\nCrime: 1\nSci-Fi: 1\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	data, err := os.ReadFile(xmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<statistics by="genre">`) {
		t.Errorf("xml = %s", data)
	}
}

func TestStatsCommand_UnsupportedAttribute(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"stats", "--dir", writeFixtures(t), "--by", "studio"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut.String(), "unsupported attribute: studio") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestTopRated(t *testing.T) {
	records := []domain.Series{
		{Title: "a", Rating: 7}, {Title: "b", Rating: 9}, {Title: "c", Rating: 7}, {Title: "d", Rating: 8},
	}
	got := topRated(records, 3)
	var titles []string
	for _, s := range got {
		titles = append(titles, s.Title)
	}
	if strings.Join(titles, ",") != "b,d,a" {
		t.Errorf("top = %v, want b,d,a", titles)
	}
	if len(topRated(records, 10)) != 4 || len(topRated(records, -1)) != 0 {
		t.Error("n is not clamped")
	}
}
