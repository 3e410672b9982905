package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taaha3244/quicktools/internal/auth"
	"github.com/taaha3244/quicktools/internal/config"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API key authentication",
		Long:  "Login, list, and logout provider API keys stored locally.",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthListCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [provider]",
		Short: "Store an API key for a provider",
		Long: `Interactively store an API key for a provider.

Examples:
  quicktools auth login
  quicktools auth login gemini
  quicktools auth login anthropic`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newAuthStore()
			if err != nil {
				return err
			}
			reader := bufio.NewReader(os.Stdin)

			var provider string
			if len(args) > 0 {
				provider = strings.ToLower(args[0])
			} else {
				fmt.Println("Select a provider:")
				for i, name := range auth.Providers {
					fmt.Printf("  %d. %s\n", i+1, name)
				}
				fmt.Printf("  %d. Other\n", len(auth.Providers)+1)
				fmt.Print("\n> ")

				input, _ := reader.ReadString('\n')
				input = strings.TrimSpace(input)

				idx := 0
				fmt.Sscanf(input, "%d", &idx)

				if idx >= 1 && idx <= len(auth.Providers) {
					provider = auth.Providers[idx-1]
				} else if idx == len(auth.Providers)+1 {
					fmt.Print("Enter provider name: ")
					provider, _ = reader.ReadString('\n')
					provider = strings.TrimSpace(strings.ToLower(provider))
				} else {
					return fmt.Errorf("invalid selection")
				}
			}

			if provider == "" {
				return fmt.Errorf("provider name is required")
			}

			fmt.Printf("Enter API key for %s: ", provider)
			keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read API key: %w", err)
			}

			if err := store.Set(provider, string(keyBytes)); err != nil {
				return fmt.Errorf("failed to save API key: %w", err)
			}

			fmt.Printf("✓ API key saved for %s in %s\n", provider, store.Path())
			return nil
		},
	}
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored API keys and their sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				cfg = &config.Config{
					Providers: make(map[string]config.ProviderConfig),
				}
			}

			store, err := newAuthStore()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tSOURCE\tSTATUS")
			fmt.Fprintln(w, "--------\t------\t------")

			seen := make(map[string]bool)
			for _, name := range auth.Providers {
				c := store.Resolve(name, cfg.Provider(name).APIKeyEnv)
				source, status := string(c.Source), "-"
				switch c.Source {
				case auth.SourceAuthStore:
					status = auth.MaskKey(c.Key)
					if e, ok := store.Entry(name); ok && !e.SavedAt.IsZero() {
						status += " (saved " + e.SavedAt.Local().Format("2006-01-02") + ")"
					}
				case auth.SourceEnvVar:
					source = "$" + c.EnvVar
					status = auth.MaskKey(c.Key)
				}

				fmt.Fprintf(w, "%s\t%s\t%s\n", name, source, status)
				seen[name] = true
			}

			endpoint := "http://localhost:11434"
			if pc, ok := cfg.Providers["ollama"]; ok && pc.Endpoint != "" {
				endpoint = pc.Endpoint
			}
			fmt.Fprintf(w, "ollama\tendpoint\t%s\n", endpoint)

			if names, err := store.Names(); err == nil {
				for _, name := range names {
					if seen[name] {
						continue
					}
					key, _ := store.Get(name)
					fmt.Fprintf(w, "%s\t%s\t%s\n", name, auth.SourceAuthStore, auth.MaskKey(key))
				}
			}

			w.Flush()
			fmt.Printf("\nKeys file: %s\n", store.Path())
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <provider>",
		Short: "Remove a stored API key",
		Long: `Remove a stored API key for a provider.

Examples:
  quicktools auth logout gemini
  quicktools auth logout openai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newAuthStore()
			if err != nil {
				return err
			}
			provider := strings.ToLower(args[0])

			if err := store.Delete(provider); err != nil {
				return fmt.Errorf("failed to remove key: %w", err)
			}

			fmt.Printf("✓ API key removed for %s\n", provider)
			return nil
		},
	}
}
