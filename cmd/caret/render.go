package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"caret/internal/catalog"
	"caret/internal/diag"
	"caret/internal/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file>",
	Short: "Render a diagnostic anchored to a span of the given file",
	Long: `Render a clang-style diagnostic for a byte span of the given source file.
Spans are byte offsets in START:END form, END exclusive. The message is
looked up in a TOML catalog by reason key and interpolated from --arg
values.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("level", "error", "diagnostic level (note|warning|error|fatal)")
	renderCmd.Flags().String("reason", "", "reason key to look up in the catalog")
	renderCmd.Flags().String("catalog", "", "path to the TOML message catalog")
	renderCmd.Flags().String("span", "", "primary byte span as START:END")
	renderCmd.Flags().StringArray("arg", nil, "template argument as key=value (repeatable)")
	renderCmd.Flags().StringArray("highlight", nil, "secondary byte span as START:END (repeatable)")
	renderCmd.Flags().Int("max-width", 0, "truncate display lines to this width (0=terminal width when tty)")
	_ = renderCmd.MarkFlagRequired("reason")
	_ = renderCmd.MarkFlagRequired("catalog")
	_ = renderCmd.MarkFlagRequired("span")
}

func runRender(cmd *cobra.Command, args []string) error {
	levelFlag, _ := cmd.Flags().GetString("level")
	reasonFlag, _ := cmd.Flags().GetString("reason")
	catalogFlag, _ := cmd.Flags().GetString("catalog")
	spanFlag, _ := cmd.Flags().GetString("span")
	argFlags, _ := cmd.Flags().GetStringArray("arg")
	highlightFlags, _ := cmd.Flags().GetStringArray("highlight")
	maxWidth, _ := cmd.Flags().GetInt("max-width")

	level, err := parseLevel(levelFlag)
	if err != nil {
		return err
	}

	cat, err := catalog.LoadFile(catalogFlag)
	if err != nil {
		return err
	}

	set := source.NewBufferSet()
	id, err := set.Load(args[0])
	if err != nil {
		return err
	}

	location, err := parseSpan(id, spanFlag)
	if err != nil {
		return fmt.Errorf("--span: %w", err)
	}
	highlights := make([]source.Span, 0, len(highlightFlags))
	for _, h := range highlightFlags {
		sp, err := parseSpan(id, h)
		if err != nil {
			return fmt.Errorf("--highlight: %w", err)
		}
		highlights = append(highlights, sp)
	}

	argsMap, err := parseArgs(argFlags)
	if err != nil {
		return err
	}

	d, err := diag.New(level, diag.Reason(reasonFlag), argsMap, location, highlights...)
	if err != nil {
		return err
	}

	lines, err := d.Render(set, cat)
	if err != nil {
		return err
	}

	width := maxWidth
	if width == 0 && isTerminal(os.Stdout) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	out := cmd.OutOrStdout()
	for _, line := range lines {
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		fmt.Fprintln(out, line)
	}

	if d.Severity() >= diag.SevError {
		os.Exit(1)
	}
	return nil
}

func parseLevel(s string) (diag.Severity, error) {
	switch strings.ToLower(s) {
	case "note":
		return diag.SevNote, nil
	case "warning":
		return diag.SevWarning, nil
	case "error":
		return diag.SevError, nil
	case "fatal":
		return diag.SevFatal, nil
	}
	return 0, fmt.Errorf("unknown level %q (must be note, warning, error, or fatal)", s)
}

func parseSpan(id source.BufferID, s string) (source.Span, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return source.Span{}, fmt.Errorf("span %q is not in START:END form", s)
	}
	start, err := strconv.ParseUint(startStr, 10, 32)
	if err != nil {
		return source.Span{}, fmt.Errorf("span start %q: %w", startStr, err)
	}
	end, err := strconv.ParseUint(endStr, 10, 32)
	if err != nil {
		return source.Span{}, fmt.Errorf("span end %q: %w", endStr, err)
	}
	if end < start {
		return source.Span{}, fmt.Errorf("span %q ends before it starts", s)
	}
	return source.Span{Buffer: id, Start: uint32(start), End: uint32(end)}, nil
}

func parseArgs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not in key=value form", pair)
		}
		out[key] = value
	}
	return out, nil
}
