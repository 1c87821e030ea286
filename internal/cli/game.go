package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func errInvalidOutput(format string) error {
	return fmt.Errorf("invalid output format %q: must be text or json", format)
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game, replacing the saved one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s session) error {
				ctx := cmd.Context()

				state, err := s.Reset(ctx)
				if err != nil {
					return err
				}
				if _, err := s.Save(ctx); err != nil {
					return err
				}

				NewOutput(cfg.Output, cmd.OutOrStdout()).Print(state)
				return nil
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s session) error {
				ctx := cmd.Context()

				if err := s.Load(ctx); err != nil {
					return err
				}
				state, err := s.State(ctx)
				if err != nil {
					return err
				}

				NewOutput(cfg.Output, cmd.OutOrStdout()).Print(state)
				return nil
			})
		},
	}
}

func newPlaceCmd() *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "place <col> <row>",
		Short: "Place a symbol for the player to move",
		Long: `Place the selected symbol at the given column and row, counted from 0.

The symbol stays selected for later moves until changed with --symbol.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("column must be a number: %s", args[0])
			}
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row must be a number: %s", args[1])
			}

			return withSession(cmd, func(s session) error {
				ctx := cmd.Context()

				if err := s.Load(ctx); err != nil {
					return err
				}
				result, err := s.Place(ctx, col, row, symbol)
				if err != nil {
					return err
				}
				saved, err := s.Save(ctx)
				if err != nil {
					return err
				}

				NewOutput(cfg.Output, cmd.OutOrStdout()).Print(MoveResult{
					Action:       ActionPlaced,
					MoveResponse: result,
					Saved:        saved,
				})
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Symbol to place: S or O (default: the selected symbol)")

	return cmd
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Take back the last move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s session) error {
				ctx := cmd.Context()

				if err := s.Load(ctx); err != nil {
					return err
				}
				result, err := s.Undo(ctx)
				if err != nil {
					return err
				}
				saved, err := s.Save(ctx)
				if err != nil {
					return err
				}

				NewOutput(cfg.Output, cmd.OutOrStdout()).Print(MoveResult{
					Action:       ActionUndone,
					MoveResponse: result,
					Saved:        saved,
				})
				return nil
			})
		},
	}
}

func newHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint",
		Short: "Report whether any empty cell can still complete an SOS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s session) error {
				ctx := cmd.Context()

				if err := s.Load(ctx); err != nil {
					return err
				}
				possible, err := s.Hint(ctx)
				if err != nil {
					return err
				}

				NewOutput(cfg.Output, cmd.OutOrStdout()).Print(HintResult{PossibleSOS: possible})
				return nil
			})
		},
	}
}
