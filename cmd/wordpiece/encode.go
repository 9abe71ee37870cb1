package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/example/go-wordpiece/internal/encoder"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var text string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Tokenize text and print vocabulary IDs",
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

			ids, err := svc.Encode(input)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(ids)
			}

			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = strconv.FormatInt(id, 10)
			}
			_, err = fmt.Fprintln(os.Stdout, strings.Join(parts, " "))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit IDs as a JSON array")

	return cmd
}
