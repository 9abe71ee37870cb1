package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/go-wordpiece/internal/encoder"
	"github.com/spf13/cobra"
)

func newEmbedCmd() *cobra.Command {
	var text string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "embed [text...]",
		Short: "Encode text and run the ONNX model on the token IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			vec, ids, err := svc.Embed(cmd.Context(), input)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"ids":       ids,
					"embedding": vec,
					"dim":       len(vec),
				})
			}

			fmt.Fprintf(os.Stdout, "ids: %v\n", ids)
			fmt.Fprintf(os.Stdout, "dim: %d\n", len(vec))
			for i, f := range vec {
				if i > 0 {
					fmt.Fprint(os.Stdout, " ")
				}
				fmt.Fprintf(os.Stdout, "%g", f)
			}
			fmt.Fprintln(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to embed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")

	return cmd
}
