package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/journal"
	"github.com/vovakirdan/tui-snake/internal/layout"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-simulate a recorded run",
	Long: `Rebuild a recorded run from its seed and input events, print the final
board, and check the result against the journal.

Examples:
  snake runs
  snake replay 5b2c0a5e-3f7d-4c36-9a53-0e6f4f2b9d11`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	run, err := store.GetRun(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run with id %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'snake runs' to see recorded runs.")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		return
	}

	st, verifyErr := journal.Verify(run)

	// One-row tiles so the board fits any terminal width it was played on.
	w := max(2*run.GridSize+2, 48)
	h := layout.HUDRows + run.GridSize + 2
	screen := core.NewScreen(w, h)
	lay := layout.Compute(w, h, run.GridSize, layout.Options{MinTile: 1})
	render.Draw(screen, st, lay, render.UI{Title: "Replay"})

	fmt.Println(screen.String())
	fmt.Println()
	fmt.Printf("Run %s (seed %d, %s)\n", run.ID, run.Seed, run.Reason)
	fmt.Printf("  recorded: score %d, length %d, %d ticks\n", run.Score, run.Length, run.Ticks)
	fmt.Printf("  replayed: score %d, length %d, %d ticks\n", st.Score, st.Len(), st.Ticks)

	if verifyErr != nil {
		fmt.Printf("  result:   MISMATCH (%v)\n", verifyErr)
		return
	}
	fmt.Println("  result:   match")
}
