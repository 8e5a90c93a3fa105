package commands

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/nucleoia/ccv/internal/browser"
	"github.com/nucleoia/ccv/internal/parser"
	"github.com/nucleoia/ccv/internal/renderer"
)

// RenderCmd converts a single JSONL log into an HTML document, without
// touching the dashboard or the lifecycle folders.
type RenderCmd struct {
	output string
	open   bool
}

func (c *RenderCmd) Name() string { return "render" }

func (c *RenderCmd) Description() string {
	return "Convert a single JSONL log file to HTML"
}

func (c *RenderCmd) Setup(fs *flag.FlagSet) {
	fs.StringVar(&c.output, "output", "", "Output HTML path (default: derived name next to the input)")
	fs.BoolVar(&c.open, "open", false, "Open the generated file in the browser")
}

type renderResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Lines  int    `json:"lines"`
}

func (c *RenderCmd) Run(ctx *Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ccv render [flags] <file.jsonl>")
	}
	inputPath := args[0]

	records, err := parser.ParseFile(inputPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%s contains no valid records", inputPath)
	}

	outputPath := c.output
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), renderer.OutputFileName(inputPath, records))
	}

	if err := renderer.GenerateHTML(records, outputPath, renderer.Options{}); err != nil {
		return err
	}

	out := NewOutputWriter(ctx.Output, ctx.Flags.JSONOutput)
	if out.IsJSON() {
		if err := out.WriteJSON(renderResult{Input: inputPath, Output: outputPath, Lines: len(records)}); err != nil {
			return err
		}
	} else {
		out.PrintLine("Generated %s", outputPath)
	}

	if c.open {
		if err := browser.OpenInBrowser(outputPath); err != nil {
			PrintError(ctx.ErrOutput, "could not open browser: %v", err)
		}
	}
	return nil
}
