// Command weave applies non-destructive edit scripts to text files and
// generates Source Map v3 output tracing the result back to its input.
//
// Usage:
//
//	weave apply <file> --script <edits.json> [options]
//	weave version
//
// Options:
//
//	--script <file>        JSON edit script of appendLeft/appendRight/overwrite ops (required)
//	-o, --output <file>    Write output to file (default: stdout)
//	--map                  Also write a Source Map v3 file alongside the output
//	--source-root <path>   sourceRoot field for the generated map
//	--include-content      Embed the input text in sourcesContent
//	--color <mode>         Colorize output: auto, always, never
//	--debug                Enable debug logging
//
// Edit script format:
//
//	[
//	  {"op": "appendLeft", "index": 0, "content": "// generated\n"},
//	  {"op": "overwrite", "start": 4, "end": 5, "content": "answer"},
//	  {"op": "appendRight", "index": 9, "content": ";"}
//	]
package main

import (
	"os"

	"github.com/weavetext/weave/internal/cli"
	"github.com/weavetext/weave/internal/logging"
)

// Build-time variables set by the release process via ldflags.
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", "error", err)
		return 1
	}
	return 0
}
