package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/taaha3244/quicktools/internal/auth"
	"github.com/taaha3244/quicktools/internal/config"
	"github.com/taaha3244/quicktools/internal/providers"
	"github.com/taaha3244/quicktools/internal/providers/anthropic"
	"github.com/taaha3244/quicktools/internal/providers/gemini"
	"github.com/taaha3244/quicktools/internal/providers/ollama"
	"github.com/taaha3244/quicktools/internal/providers/openai"
)

var providerNames = []string{"gemini", "anthropic", "openai", "ollama"}

// apiKey resolves the key for a hosted provider from the auth store or its
// configured environment variable.
func apiKey(cfg *config.Config, store *auth.Store, name string) string {
	return store.Resolve(name, cfg.Provider(name).APIKeyEnv).Key
}

func newProvider(cfg *config.Config, store *auth.Store, name string) (providers.Provider, error) {
	pc := cfg.Provider(name)

	switch name {
	case "gemini":
		key := apiKey(cfg, store, name)
		client, err := gemini.New(key, pc.Endpoint)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "anthropic":
		key := apiKey(cfg, store, name)
		var opts []option.RequestOption
		if pc.Endpoint != "" {
			opts = append(opts, option.WithBaseURL(pc.Endpoint))
		}
		client, err := anthropic.New(key, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "openai":
		key := apiKey(cfg, store, name)
		client, err := openai.New(key, pc.Organization)
		if err != nil {
			return nil, err
		}
		if pc.Endpoint != "" {
			client = client.WithEndpoint(pc.Endpoint)
		}
		return client, nil

	case "ollama":
		client, err := ollama.New(pc.Endpoint)
		if err != nil {
			return nil, err
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (available: gemini, anthropic, openai, ollama)", name)
	}
}

func newProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Manage LLM providers",
		Long:  "List, test, and inspect the language model providers behind the AI tools.",
	}

	cmd.AddCommand(newProvidersListCmd())
	cmd.AddCommand(newProvidersTestCmd())
	cmd.AddCommand(newProvidersModelsCmd())

	return cmd
}

func newProvidersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		Long:  "Show all providers, whether they are ready and which one the AI tools use.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := newAuthStore()
			if err != nil {
				return err
			}
			active, _ := providers.ParseModelString(cfg.AI.Model)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tSTATUS\tDEFAULT MODEL\tENDPOINT")
			fmt.Fprintln(w, "--------\t------\t-------------\t--------")

			for _, name := range providerNames {
				pc := cfg.Provider(name)
				status := "not configured"

				if name == "ollama" {
					status = ollamaStatus(cmd.Context(), pc.Endpoint)
				} else if apiKey(cfg, store, name) != "" {
					status = "ready"
				}

				label := name
				if name == active {
					label += " *"
				}

				endpoint := pc.Endpoint
				if endpoint == "" {
					endpoint = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, status, pc.DefaultModel, endpoint)
			}

			w.Flush()
			fmt.Printf("\n* used by AI tools (ai.model = %s)\n", cfg.AI.Model)
			return nil
		},
	}
}

func ollamaStatus(ctx context.Context, endpoint string) string {
	client, err := ollama.New(endpoint)
	if err != nil {
		return "error"
	}
	ctx, cancel := context.WithTimeout(ctx, providers.DefaultTimeout)
	defer cancel()
	if _, err := client.ListModels(ctx); err != nil {
		return "unreachable"
	}
	return "ready"
}

func newProvidersTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [provider-name]",
		Short: "Test provider connection",
		Long: `Test connection to a specific provider.

Examples:
  quicktools providers test gemini
  quicktools providers test anthropic
  quicktools providers test ollama`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerName := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := newAuthStore()
			if err != nil {
				return err
			}
			provider, err := newProvider(cfg, store, providerName)
			if err != nil {
				return fmt.Errorf("failed to create %s client: %w (run 'quicktools auth login')", providerName, err)
			}

			fmt.Printf("Testing connection to %s...\n", providerName)

			ctx, cancel := context.WithTimeout(cmd.Context(), providers.DefaultTimeout)
			defer cancel()

			models, err := provider.ListModels(ctx)
			if err != nil {
				return fmt.Errorf("connection failed: %w", err)
			}

			fmt.Printf("✓ Connection successful! Found %d models.\n", len(models))
			return nil
		},
	}
}

func newProvidersModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models [provider-name]",
		Short: "List available models for provider",
		Long: `List all available models for a specific provider.

Examples:
  quicktools providers models gemini
  quicktools providers models openai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerName := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := newAuthStore()
			if err != nil {
				return err
			}
			provider, err := newProvider(cfg, store, providerName)
			if err != nil {
				return fmt.Errorf("failed to create %s client: %w (run 'quicktools auth login')", providerName, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), providers.DefaultTimeout)
			defer cancel()

			models, err := provider.ListModels(ctx)
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			if len(models) == 0 {
				fmt.Println("No models available.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL ID\tNAME\tCONTEXT SIZE\tINPUT $/1M\tOUTPUT $/1M")
			fmt.Fprintln(w, "--------\t----\t------------\t----------\t-----------")

			for _, m := range models {
				contextSize := "-"
				if m.ContextSize > 0 {
					contextSize = fmt.Sprintf("%dk", m.ContextSize/1000)
				}
				inputPrice := "-"
				if m.Pricing.InputPer1M > 0 {
					inputPrice = fmt.Sprintf("$%.2f", m.Pricing.InputPer1M)
				}
				outputPrice := "-"
				if m.Pricing.OutputPer1M > 0 {
					outputPrice = fmt.Sprintf("$%.2f", m.Pricing.OutputPer1M)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, contextSize, inputPrice, outputPrice)
			}

			w.Flush()
			return nil
		},
	}
}
