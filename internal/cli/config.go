package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/taaha3244/quicktools/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View, edit, and manage QuickTools configuration settings.",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigEditCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current configuration including all defaults and overrides.",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cfgFile)
			if err != nil {
				return err
			}
			if _, err := config.Load(cfgFile); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			data, err := yaml.Marshal(v.AllSettings())
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in default editor",
		Long:  "Open the configuration file in your default editor ($EDITOR or vim).",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.Path(cfgFile)
			if err != nil {
				return err
			}

			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				if err := writeDefaultConfig(configPath); err != nil {
					return err
				}
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vim"
			}

			execCmd := exec.Command(editor, configPath)
			execCmd.Stdin = os.Stdin
			execCmd.Stdout = os.Stdout
			execCmd.Stderr = os.Stderr

			return execCmd.Run()
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration value",
		Long: `Set a configuration value using dot notation.

Examples:
  quicktools config set ai.model anthropic/claude-sonnet-4-5
  quicktools config set permissions.ai ask
  quicktools config set imaging.default_quality 80`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			configPath, err := config.Path(cfgFile)
			if err != nil {
				return err
			}

			configDir := filepath.Dir(configPath)
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			// Load existing config file or create new one
			v := viper.New()
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")

			if _, err := os.Stat(configPath); err == nil {
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
			}

			typedValue := parseConfigValue(value)
			v.Set(key, typedValue)

			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Set %s = %v\n", key, typedValue)
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long: `Get a configuration value using dot notation.

Examples:
  quicktools config get ai.model
  quicktools config get server.addr
  quicktools config get permissions`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			v, err := config.NewViper(cfgFile)
			if err != nil {
				return err
			}

			value := v.Get(key)
			if value == nil {
				return fmt.Errorf("key not found: %s", key)
			}

			// Format output based on type
			switch val := value.(type) {
			case map[string]interface{}:
				data, _ := yaml.Marshal(val)
				fmt.Print(string(data))
			case []interface{}:
				data, _ := yaml.Marshal(val)
				fmt.Print(string(data))
			default:
				fmt.Println(value)
			}

			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.Path(cfgFile)
			if err != nil {
				return err
			}
			fmt.Println(configPath)

			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				fmt.Println("(file does not exist yet)")
			}
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.Path(cfgFile)
			if err != nil {
				return err
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
			}

			if err := writeDefaultConfig(configPath); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return config.WriteDefaults(path)
}

// parseConfigValue keeps durations and other strings as text and turns
// whole booleans and numbers into typed values.
func parseConfigValue(value string) interface{} {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
