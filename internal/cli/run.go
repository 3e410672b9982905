package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/permissions"
	"github.com/taaha3244/quicktools/internal/tools"
	"github.com/taaha3244/quicktools/internal/tui"
)

func newRunCmd() *cobra.Command {
	var (
		sets  []string
		files []string
		out   string
		raw   bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "run <slug>",
		Short: "Run one tool",
		Long: `Run a catalog tool with the given input values.

Examples:
  quicktools run cgpa-percentage --set value=8.2
  quicktools run age-calculator --set date=1990-05-17
  quicktools run ai-summarizer --set prompt="$(cat notes.txt)"
  quicktools run image-resize --file file=photo.jpg --set width=800 --out small.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{prompt: newStdinPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())})
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if yes {
				a.permissions.AllowAll()
			}

			tool, err := a.store.Get(args[0])
			if err != nil {
				return fmt.Errorf("tool not found: %s", args[0])
			}

			values, err := buildValues(sets, files)
			if err != nil {
				return err
			}

			ctx := logger.ContextWithLogger(cmd.Context(), a.log)
			res := a.dispatcher.Execute(ctx, tool, values)
			return writeResult(cmd.OutOrStdout(), tool, res, out, raw)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "input value as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file input as name=path (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "where to write binary output (default: the suggested download name)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print text output without markdown rendering")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "answer yes to every permission prompt")

	return cmd
}

func buildValues(sets, files []string) (tools.Values, error) {
	values := tools.Values{}

	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q (expected name=value)", kv)
		}
		values[name] = value
	}

	for _, kv := range files {
		name, path, ok := strings.Cut(kv, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --file %q (expected name=path)", kv)
		}
		file, err := tools.ReadFile(path)
		if err != nil {
			return nil, err
		}
		values[name] = file
	}

	return values, nil
}

func writeResult(out io.Writer, tool catalog.Descriptor, res tools.Result, outPath string, raw bool) error {
	if !res.Success {
		if res.Error == "" {
			return fmt.Errorf("%s has no runnable action", tool.Slug)
		}
		return errors.New(res.Error)
	}

	if res.IsFile() {
		if outPath == "" {
			outPath = res.DownloadName
		}
		if err := os.WriteFile(outPath, res.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		fmt.Fprintf(out, "✓ Wrote %s (%s, %d bytes)\n", outPath, res.MimeType, len(res.Data))
		return nil
	}

	if raw {
		fmt.Fprintln(out, res.Text)
		return nil
	}
	fmt.Fprint(out, tui.RenderMarkdown(res.Text, 0))
	return nil
}

// newStdinPrompt asks on out and reads the answer from in.
func newStdinPrompt(in io.Reader, out io.Writer) permissions.PromptFunc {
	reader := bufio.NewReader(in)

	return func(kind catalog.Kind, tool, details string) (permissions.Decision, error) {
		for {
			fmt.Fprintf(out, "Run %s tool %q (%s)? [y]es / [n]o / [a]lways / ne[v]er: ", kind, tool, details)

			line, err := reader.ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if err != nil && answer == "" {
				return permissions.DecisionDenyOnce, fmt.Errorf("no answer: %w", err)
			}

			switch answer {
			case "y", "yes":
				return permissions.DecisionAllowOnce, nil
			case "n", "no":
				return permissions.DecisionDenyOnce, nil
			case "a", "always":
				return permissions.DecisionAllow, nil
			case "v", "never":
				return permissions.DecisionDeny, nil
			}
			if err != nil {
				return permissions.DecisionDenyOnce, fmt.Errorf("no answer: %w", err)
			}
		}
	}
}
