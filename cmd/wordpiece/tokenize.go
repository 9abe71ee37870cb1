package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/example/go-wordpiece/internal/encoder"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var text string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Split text into vocabulary tokens",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			input, err := readInputText(text, args)
			if err != nil {
				return err
			}

			svc, err := encoder.NewService(cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			tokens, err := svc.Tokenize(input)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(tokens)
			}

			_, err = fmt.Fprintln(os.Stdout, strings.Join(tokens, " "))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit tokens as a JSON array")

	return cmd
}
