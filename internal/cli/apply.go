package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weavetext/weave/internal/clistyle"
	"github.com/weavetext/weave/internal/config"
	"github.com/weavetext/weave/internal/logging"
	"github.com/weavetext/weave/pkg/weave"
)

type applyFlags struct {
	script         string
	output         string
	mapOutput      bool
	sourceRoot     string
	includeContent bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply an edit script to a file and optionally emit its source map",
		Long: `Apply reads a file, replays a JSON edit script of appendLeft,
appendRight, and overwrite operations against it, and writes the
resulting text. With --map, it also writes a Source Map v3 file
alongside the output (alongside the input when writing to stdout)
tracing the output's original and overwritten text back to the input
file; inserted text carries no mapping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.script, "script", "", "path to the JSON edit script (required)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to file (default: stdout)")
	cmd.Flags().BoolVar(&flags.mapOutput, "map", false, "also write a Source Map v3 file")
	cmd.Flags().StringVar(&flags.sourceRoot, "source-root", "", "sourceRoot field for the generated map")
	cmd.Flags().BoolVar(&flags.includeContent, "include-content", false, "embed the input text in sourcesContent")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

func runApply(cmd *cobra.Command, inputPath string, flags *applyFlags) error {
	logger := logging.Default()

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	scriptData, err := os.ReadFile(flags.script)
	if err != nil {
		return fmt.Errorf("reading edit script: %w", err)
	}
	edits, err := ParseScript(scriptData)
	if err != nil {
		return err
	}

	e := weave.New(source)
	if err := ApplyScript(e, edits); err != nil {
		return fmt.Errorf("applying edit script: %w", err)
	}

	output := e.ToString()
	outPath := flags.output
	if outPath == "" {
		if _, err := cmd.OutOrStdout().Write(output); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else if err := os.WriteFile(outPath, output, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	if flags.mapOutput {
		sourceRoot := flags.sourceRoot
		if sourceRoot == "" {
			if cfg, err := loadConfig(cmd); err == nil && cfg != nil {
				sourceRoot = cfg.Resolve().SourceRoot
			}
		}
		sm := e.GenerateMap(weave.Options{
			File:           outPath,
			SourceRoot:     sourceRoot,
			Source:         inputPath,
			IncludeContent: flags.includeContent,
		})
		mapJSON, err := sm.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding source map: %w", err)
		}
		mapPath := outPath + ".map"
		if outPath == "" {
			mapPath = inputPath + ".map"
		}
		if err := os.WriteFile(mapPath, mapJSON, 0644); err != nil {
			return fmt.Errorf("writing source map: %w", err)
		}
		logger.Info("wrote source map", "path", mapPath)
	}

	printApplySummary(cmd, len(source), len(output))
	return nil
}

// loadConfig honors an explicit --config path over the default
// directory walk from the current directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	cfg, _, err := config.Load(".")
	return cfg, err
}

func printApplySummary(cmd *cobra.Command, inLen, outLen int) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil || colorMode == "" {
		colorMode = "auto"
	}
	styles := clistyle.NewStyles(clistyle.IsColorEnabled(colorMode, os.Stderr))
	width := clistyle.TerminalWidth(os.Stderr)

	summaryLine := fmt.Sprintf("%d -> %d bytes", inLen, outLen)
	separator := strings.Repeat("-", min(width, len(summaryLine)+2))

	var b strings.Builder
	b.WriteString(styles.SummaryTitle.Render("weave apply") + "\n")
	b.WriteString(styles.TableBorder.Render(separator) + "\n")
	b.WriteString(styles.SummaryValue.Render(summaryLine) + "\n")
	fmt.Fprint(cmd.ErrOrStderr(), b.String())
}
