package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/rostra/internal/adapters/repository"
	"github.com/okian/rostra/internal/domain/reference"
	"github.com/okian/rostra/internal/domain/updates"
	"github.com/okian/rostra/pkg/logger"
)

func main() {
	var (
		dir  = flag.String("dir", "saves", "Directory holding the saves")
		save = flag.String("save", "", "Save to search")
		name = flag.String("name", "", `Player name, "first last" or last name`)
		help = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *save == "" || *name == "" {
		flag.Usage()
		return
	}

	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithLevel("warn")); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := find(context.Background(), *dir, *save, *name, os.Stdout); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// find prints one line per player matching name in the save.
func find(ctx context.Context, dir, save, name string, out io.Writer) error {
	store := repository.NewCSVStore(dir,
		repository.WithImportName(save),
		repository.WithLogger(logger.Named("store")),
	)
	tables, _, err := store.Load(ctx)
	if err != nil {
		return err
	}
	matches, err := updates.FindPlayer(name, tables.Players, reference.Positions(), reference.NewTeamMap(tables.Teams))
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\tovr %d\t#%d\n",
			m.Player.PGID, m.Player.FullName(), m.Position, m.Team, m.Player.Overall, m.Player.Jersey)
	}
	return nil
}
