// Command dxgiinfo prints the adapters, outputs and formats the dxgi
// package reports for the current machine.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/dxgi"
	"github.com/gogpu/dxgi/backend"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// verbose enables debug logging on stderr.
	verbose bool

	// showMetrics dumps the package metrics after the command runs.
	showMetrics bool

	// factory is opened by PersistentPreRunE and released afterwards.
	factory *dxgi.Factory
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dxgiinfo",
	Short: "Inspect DXGI adapters and outputs",
	Long: `dxgiinfo opens a DXGI factory on the configured backend and prints
what it enumerates.

Configuration is read from DXVK_* environment variables and, when --config
is given, from a YAML file with the same keys:

  custom_vendor_id: "10de"
  custom_device_id: "2204"
  backend: vulkan
  pipeline_cache_dir: /var/cache/dxgi`,
	SilenceUsage:       true,
	PersistentPreRunE:  openFactory,
	PersistentPostRunE: closeFactory,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("backend", "", "backend provider ("+fmt.Sprint(backend.Available())+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print package metrics on exit")

	rootCmd.AddCommand(adaptersCmd)
	rootCmd.AddCommand(outputsCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(backendsCmd)
}

// openFactory loads the configuration and creates the factory.
func openFactory(cmd *cobra.Command, args []string) error {
	if verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		dxgi.SetLogger(slog.New(h))
	}

	// formats and backends need no adapter
	if cmd.Name() == "formats" || cmd.Name() == "backends" {
		return nil
	}

	v, err := readConfigFile(configFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("backend", cmd.Flags().Lookup("backend")); err != nil {
		return fmt.Errorf("bind backend flag: %w", err)
	}

	// A changed --backend flag beats the environment.
	cfg, err := dxgi.LoadConfig(v)
	if err != nil {
		return err
	}

	factory, err = dxgi.NewFactory(cfg)
	if err != nil {
		return fmt.Errorf("create factory: %w", err)
	}
	return nil
}

func closeFactory(cmd *cobra.Command, args []string) error {
	if factory != nil {
		factory.Release()
		factory = nil
	}
	if showMetrics {
		return printMetrics(cmd.OutOrStdout())
	}
	return nil
}

// readConfigFile returns a viper instance holding the config file, or an
// empty one when path is empty.
func readConfigFile(path string) (*viper.Viper, error) {
	v := viper.New()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
