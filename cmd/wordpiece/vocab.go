package main

import (
	"fmt"
	"os"

	"github.com/example/go-wordpiece/internal/encoder"
	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the built vocabulary",
	}

	cmd.AddCommand(newVocabInfoCmd())
	cmd.AddCommand(newVocabLookupCmd())

	return cmd
}

func newVocabInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print vocabulary size and unknown token",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			svc, err := encoder.NewService(cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			v := svc.Vocabulary()
			fmt.Fprintf(os.Stdout, "size: %d\n", v.Size())
			if unk, ok := v.UnknownToken(); ok {
				idx, err := v.GetIndex(unk)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "unknown: %s (id %d)\n", unk, idx)
			} else {
				fmt.Fprintln(os.Stdout, "unknown: (not configured)")
			}
			return nil
		},
	}
}

func newVocabLookupCmd() *cobra.Command {
	var byID int64

	cmd := &cobra.Command{
		Use:   "lookup [token...]",
		Short: "Resolve tokens to IDs, or an ID to its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			svc, err := encoder.NewService(cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			v := svc.Vocabulary()

			if cmd.Flags().Changed("id") {
				fmt.Fprintf(os.Stdout, "%d\t%s\n", byID, v.GetToken(byID))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("no tokens given: pass token arguments or --id")
			}
			for _, tok := range args {
				idx, err := v.GetIndex(tok)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "%s\t%d\n", tok, idx)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&byID, "id", 0, "Look up the token at this ID instead")

	return cmd
}
