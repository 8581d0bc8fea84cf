// cmd/boggle/root.go
//
// Command tree for the boggle CLI.
// Responsibilities:
//   - Persistent board flags with defaults from the environment config.
//   - board: print a (seeded) board.
//   - check: trace words on the board and look them up in the word list.
//   - solve: list every word-list entry on the board with its points.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/boggle/internal/board"
	"github.com/robalobadob/boggle/internal/config"
	"github.com/robalobadob/boggle/internal/game"
	"github.com/robalobadob/boggle/internal/words"
)

// options are the flags shared by every subcommand.
type options struct {
	seed      int64
	height    int
	width     int
	letterMax int
	minLen    int
	wordsFile string
}

func newRootCmd(cfg config.Config) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "boggle",
		Short:         "Generate Boggle boards and search them for words",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := root.PersistentFlags()
	f.Int64Var(&opts.seed, "seed", 0, "board seed (0 picks a random one)")
	f.IntVar(&opts.height, "height", cfg.BoardHeight, "board rows")
	f.IntVar(&opts.width, "width", cfg.BoardWidth, "board columns")
	f.IntVar(&opts.letterMax, "letter-max", cfg.LetterMax, "maximum copies of one letter")
	f.IntVar(&opts.minLen, "min-len", cfg.MinWordLen, "shortest word that scores")
	f.StringVar(&opts.wordsFile, "words", cfg.WordsFile, "word list file (default: embedded list)")

	root.AddCommand(
		newBoardCmd(opts),
		newCheckCmd(opts),
		newSolveCmd(opts),
	)
	return root
}

func newBoardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rd, err := opts.round()
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), rd)
			return nil
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check WORD...",
		Short: "Report whether words can be traced on the board and are in the word list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := opts.round()
			if err != nil {
				return err
			}
			dict, err := opts.dictionary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBoard(out, rd)
			for _, w := range args {
				res := game.Check(rd.Grid, dict, w, opts.minLen)
				fmt.Fprintf(out, "%s: %s\n", res.Word, describe(res))
			}
			return nil
		},
	}
}

func newSolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "List every word of the word list found on the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rd, err := opts.round()
			if err != nil {
				return err
			}
			dict, err := opts.dictionary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBoard(out, rd)
			found := board.Solve(rd.Grid, dict.Words(), opts.minLen)
			total := 0
			for _, w := range found {
				total += game.Points(w)
				fmt.Fprintf(out, "%-16s %d\n", w, game.Points(w))
			}
			fmt.Fprintf(out, "%d words, %d points\n", len(found), total)
			return nil
		},
	}
}

// round generates the board the flags describe.
func (o *options) round() (*game.Round, error) {
	rd, err := game.New(game.Options{
		Height:    o.height,
		Width:     o.width,
		LetterMax: o.letterMax,
		MinLen:    o.minLen,
		Seed:      o.seed,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Int64("seed", rd.Seed).Msg("board generated")
	return rd, nil
}

func (o *options) dictionary() (*words.Dictionary, error) {
	if o.wordsFile != "" {
		return words.LoadFile(o.wordsFile)
	}
	return words.Embedded()
}

func printBoard(w io.Writer, rd *game.Round) {
	fmt.Fprint(w, rd.Grid.String())
	fmt.Fprintf(w, "seed: %d\n", rd.Seed)
}

func describe(res game.WordResult) string {
	var parts []string
	if res.OnBoard {
		steps := make([]string, len(res.Path))
		for i, c := range res.Path {
			steps[i] = fmt.Sprintf("(%d,%d)", c.Row, c.Col)
		}
		parts = append(parts, "on board "+strings.Join(steps, " "))
	} else {
		parts = append(parts, "not on board")
	}
	if res.InDictionary {
		parts = append(parts, "in word list")
	} else {
		parts = append(parts, "not in word list")
	}
	if res.Valid {
		parts = append(parts, fmt.Sprintf("%d points", res.Points))
	}
	return strings.Join(parts, ", ")
}
