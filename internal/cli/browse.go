package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and run tools in the terminal",
		Long:  "Open the interactive catalog browser. Binary results are saved to --out-dir.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so logs only go out at warn and above.
			if logLevel == "" {
				logLevel = "warn"
			}

			ctx := cmd.Context()
			prompter := tui.NewPrompter(ctx)

			a, err := newApp(appOptions{prompt: prompter.Prompt})
			if err != nil {
				return err
			}
			defer a.log.Sync()

			status := fmt.Sprintf("%s/%s", a.generator.ProviderName(), a.generator.Model())
			a.log.Debug("starting browser", zap.String("ai", status))

			return tui.Run(tui.Options{
				Store:     a.store,
				Runner:    a.dispatcher,
				Prompter:  prompter,
				OutputDir: outDir,
				Status:    "AI: " + status,
				Context:   logger.ContextWithLogger(ctx, a.log),
			})
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for files produced by image and PDF tools")
	return cmd
}
