package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/clarete/pegmatch"
	"github.com/clarete/pegmatch/ascii"
)

var log = commonlog.GetLogger("pegmatch")

type runArgs struct {
	inputPath string
	showTree  bool
	trace     bool
	fullInput bool
	color     bool
	settings  []string
}

func newRunCmd(verbose *int) *cobra.Command {
	var a runArgs

	cmd := &cobra.Command{
		Use:   "run <grammar> [input]",
		Short: "Match a grammar against some input",
		Long: `Match a grammar against the input given as an argument, or the
contents of --file.  Without either, lines read from the standard input
are matched one at a time.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := findGrammar(args[0])
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			root, err := entry.build(cfg)
			if err != nil {
				return fmt.Errorf("build grammar %s: %w", entry.name, err)
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:   entry.name,
				Level:  engineLogLevel(*verbose, a.trace),
				Output: cmd.ErrOrStderr(),
			})
			runner := pegmatch.NewParseRunner(root, pegmatch.WithLogger(logger), pegmatch.WithConfig(cfg))

			theme := ascii.NoTheme
			if a.color {
				theme = ascii.DefaultTheme
			}
			out := cmd.OutOrStdout()

			switch {
			case a.inputPath != "":
				data, err := os.ReadFile(a.inputPath)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				log.Infof("matching %s against %s", entry.name, a.inputPath)
				return runOnce(out, runner, string(data), theme)
			case len(args) == 2:
				return runOnce(out, runner, args[1], theme)
			default:
				return runLines(cmd.InOrStdin(), out, runner, theme)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.inputPath, "file", "f", "", "Read the input from this file")
	flags.BoolVarP(&a.showTree, "tree", "t", false, "Print the parse tree")
	flags.BoolVar(&a.trace, "trace", false, "Log every matcher activation")
	flags.BoolVar(&a.fullInput, "full", false, "Only match when the whole input is consumed")
	flags.BoolVar(&a.color, "color", false, "Colorize the output")
	flags.StringArrayVar(&a.settings, "set", nil, "Change a setting, as key=value (see the config command)")

	return cmd
}

// config merges the flags with the --set overrides, which win
func (a *runArgs) config() (*pegmatch.Config, error) {
	cfg := pegmatch.NewConfig()
	cfg.SetBool("runner.parse_tree", a.showTree)
	cfg.SetBool("runner.trace", a.trace)
	cfg.SetBool("runner.full_input", a.fullInput)
	for _, s := range a.settings {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("setting `%s` should look like key=value", s)
		}
		if err := cfg.Parse(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
		log.Debugf("setting %s overridden", key)
	}
	return cfg, nil
}

func engineLogLevel(verbose int, trace bool) hclog.Level {
	switch {
	case trace || verbose > 2:
		return hclog.Trace
	case verbose == 2:
		return hclog.Debug
	case verbose == 1:
		return hclog.Info
	default:
		return hclog.Warn
	}
}

func runOnce(w io.Writer, runner *pegmatch.ParseRunner, input string, theme ascii.Theme) error {
	result, err := runner.Run(input)
	if err != nil {
		return err
	}
	printResult(w, result, theme)
	if !result.Matched {
		return fmt.Errorf("input doesn't match %s", runner.Root().Label())
	}
	return nil
}

// runLines matches each line read from `r` on its own.  Lines that
// don't match are reported but don't stop the loop.
func runLines(r io.Reader, w io.Writer, runner *pegmatch.ParseRunner, theme ascii.Theme) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := runner.Run(line)
		if err != nil {
			return err
		}
		printResult(w, result, theme)
	}
	return scanner.Err()
}

func printResult(w io.Writer, result *pegmatch.ParsingResult, theme ascii.Theme) {
	if result.Matched {
		fmt.Fprintf(w, "%s %s\n",
			ascii.Paint(theme.Success, "matched"),
			ascii.Color(theme.Muted, "(%d of %d)", result.End, result.Input.Len()))
	} else {
		fmt.Fprintln(w, ascii.Paint(theme.Error, "no match"))
	}
	for i, v := range result.ValueStack.Values() {
		fmt.Fprintf(w, "%s %s\n", ascii.Color(theme.Muted, "[%d]", i), ascii.Color(theme.Value, "%v", v))
	}
	for _, perr := range result.Errors {
		fmt.Fprintf(w, "%s %s\n", ascii.Paint(theme.Error, "error:"), perr)
	}
	if result.Tree != nil {
		fmt.Fprint(w, result.HighlightTree(theme))
	}
}
