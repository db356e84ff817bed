package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/pkg/logger"
)

func TestFind(t *testing.T) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	files := map[string]string{
		"PLAY": "PGID,PFNA,PLNA,PPOS,TGID,POVR,PJEN\n1,Ann,Bee,19,1,80,3\n2,Cal,Bee,0,1009,60,7\n",
		"TEAM": "TGID,TSNA\n1,Bears\n",
		"DCHT": "TGID,PGID,PPOS,DDEP\n",
		"INJY": "TGID,PGID\n",
	}
	for table, content := range files {
		path := filepath.Join(dir, "league", "league_"+table+".csv")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := find(context.Background(), dir, "league", "BEE", &out); err != nil {
		t.Fatal(err)
	}
	want := "1\tAnn Bee\tK\tBears\tovr 80\t#3\n2\tCal Bee\tQB\tFA\tovr 60\t#7\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}

	if err := find(context.Background(), dir, "league", "nobody here", &out); !errors.Is(err, updates.ErrNoMatch) {
		t.Fatalf("want ErrNoMatch, got %v", err)
	}
}
