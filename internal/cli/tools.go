package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/config"
	"github.com/taaha3244/quicktools/internal/permissions"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Browse the tool catalog",
		Long:  "List and inspect the tools in the catalog.",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsInfoCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	var (
		category string
		search   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog tools",
		Long: `Show the tools in the catalog, optionally filtered by category and search text.

Examples:
  quicktools tools list
  quicktools tools list --category Image
  quicktools tools list --search pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cat, ok := catalog.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q (available: All, PDF, Image, AI, Student)", category)
			}

			store, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}
			list := store.Filter(cat, search)

			if asJSON {
				if list == nil {
					list = []catalog.Descriptor{}
				}
				return writeIndentedJSON(cmd.OutOrStdout(), list)
			}

			printToolList(cmd.OutOrStdout(), list, cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category to show (All, PDF, Image, AI, Student)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text to match in name or description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print descriptors as JSON")

	return cmd
}

func printToolList(out io.Writer, list []catalog.Descriptor, cfg *config.Config) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No tools found")
		return
	}

	perms := permissions.NewManager(&cfg.Permissions, nil)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY\tDESCRIPTION\tPERMISSION")
	fmt.Fprintln(w, "----\t----\t--------\t-----------\t----------")

	for _, tool := range list {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			tool.Slug,
			tool.Icon.Glyph(),
			tool.Name,
			tool.Category,
			truncate(tool.Description, 50),
			perms.Permission(catalog.KindOf(tool.Action)))
	}

	w.Flush()
}

func newToolsInfoCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info [slug]",
		Short: "Show tool details",
		Long: `Show a tool's description, action and inputs.

Examples:
  quicktools tools info image-resize
  quicktools tools info cgpa-percentage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}

			tool, err := store.Get(args[0])
			if err != nil {
				return fmt.Errorf("tool not found: %s", args[0])
			}

			if asJSON {
				return writeIndentedJSON(cmd.OutOrStdout(), tool)
			}

			kind := catalog.KindOf(tool.Action)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", tool.Name)
			fmt.Fprintf(out, "Slug: %s\n", tool.Slug)
			fmt.Fprintf(out, "Category: %s\n", tool.Category.Info().Label)
			fmt.Fprintf(out, "Description: %s\n", tool.Description)
			fmt.Fprintf(out, "Action: %s (%s)\n", tool.ActionType, kind)
			fmt.Fprintf(out, "Permission: %s\n", permissions.NewManager(&cfg.Permissions, nil).Permission(kind))
			if tool.SystemPrompt != "" {
				fmt.Fprintf(out, "System prompt: %s\n", tool.SystemPrompt)
			}

			fmt.Fprintln(out, "\nInputs:")
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, in := range tool.Inputs {
				extra := in.Placeholder
				if in.Accept != "" {
					extra = "accepts " + in.Accept
				}
				if len(in.Options) > 0 {
					extra = strings.Join(in.Options, " | ")
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", in.Name, in.Type, in.Label, extra)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the descriptor as JSON")
	return cmd
}

func writeIndentedJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
