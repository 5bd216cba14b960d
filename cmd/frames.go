package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/galpin/pluck/internal/frames"
	"github.com/galpin/pluck/internal/frameset"
	"github.com/galpin/pluck/internal/tree"
)

var framesSchemaPath string

func init() {
	framesCmd.Flags().StringVarP(&framesSchemaPath, "schema", "s", "", "Path to the frame declaration file (.hcl)")
	framesCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	_ = framesCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(framesCmd)
}

var framesCmd = &cobra.Command{
	Use:   "frames [input.json]",
	Short: "Extract declared frames from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := frameset.Load(framesSchemaPath)
		if err != nil {
			return err
		}

		data, err := readInput(args[0])
		if err != nil {
			return err
		}
		doc, err := oj.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		captured := frames.Extract(tree.FromAny(doc), set.Frames, set.Nested)
		logger.Debug("extracted", "frames", len(captured))

		native := make(map[string]any, len(captured))
		for name, values := range captured {
			items := make([]any, len(values))
			for i, v := range values {
				items[i] = v.Interface()
			}
			native[name] = items
		}

		out, closeOut, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeOut()
		_, err = out.Write([]byte(oj.JSON(native, 2) + "\n"))
		return err
	},
}
