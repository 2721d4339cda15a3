package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables that back each flag,
// e.g. HANDLERGEN_OUTPUT_DIR for --output-dir.
const envPrefix = "HANDLERGEN"

// Config is the resolved run configuration. Flags win over environment
// variables, which win over flag defaults. No file is read.
type Config struct {
	OutputDir string
	DryRun    bool
	Diff      bool
	NoClobber bool
	Verbose   bool
}

// loadConfig resolves cmd's flags against the environment.
func loadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("binding flags: %w", err)
	}
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return Config{}, fmt.Errorf("binding persistent flags: %w", err)
	}

	cfg := Config{
		OutputDir: v.GetString("output-dir"),
		DryRun:    v.GetBool("dry-run"),
		Diff:      v.GetBool("diff"),
		NoClobber: v.GetBool("no-clobber"),
		Verbose:   v.GetBool("verbose"),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	return cfg, nil
}
