// Package cli provides the command-line interface for img2color.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/img2color/internal/naming"
	"github.com/jmylchreest/img2color/internal/naming/data"
	"github.com/jmylchreest/img2color/internal/version"
)

// envPrefix prefixes environment overrides, e.g. IMG2COLOR_COLOURS=8.
const envPrefix = "IMG2COLOR"

// app carries the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	logger hclog.Logger
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "img2color",
		Short: "Describe the colour palette of an image",
		Long: `img2color extracts the dominant colours of an image and names each one
using several colour naming systems: CSS3 web colours, the XKCD colour
survey, and the design, common, family, type and colour-or-neutral
classifications derived from it.`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialise(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.img2color.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging on stderr")
	flags.Bool("log-json", false, "log as JSON")
	flags.StringSlice("taxonomy-file", nil, "add a taxonomy from a YAML file, as id=path (repeatable)")
	a.bindFlags(flags)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newExtractCmd(a))
	rootCmd.AddCommand(newTaxonomiesCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// bindFlags makes every flag in flags readable through viper, so config file
// keys and IMG2COLOR_* variables use the flag names.
func (a *app) bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		cobra.CheckErr(a.v.BindPFlag(f.Name, f))
	})
}

// initialise reads the config file and environment, then sets up logging.
func (a *app) initialise(cmd *cobra.Command) error {
	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".img2color")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	configErr := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if configErr != nil && !errors.As(configErr, &notFound) {
		return fmt.Errorf("failed to read config file: %w", configErr)
	}

	a.logger = newLogger(cmd.ErrOrStderr(), a.v.GetBool("verbose"), a.v.GetBool("log-json"))
	if configErr == nil {
		a.logger.Debug("using config file", "path", a.v.ConfigFileUsed())
	}
	return nil
}

func newLogger(w io.Writer, verbose, jsonFormat bool) hclog.Logger {
	if !verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "img2color",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "img2color",
		Output:     w,
		Level:      hclog.Debug,
		JSONFormat: jsonFormat,
	})
}

// registry returns the embedded registry, extended with any --taxonomy-file
// entries.
func (a *app) registry() (*naming.Registry, error) {
	files := a.v.GetStringSlice("taxonomy-file")
	if len(files) == 0 {
		return naming.Default(), nil
	}

	opts := make([]naming.Option, 0, len(files))
	for _, flagValue := range files {
		for entry := range strings.SplitSeq(flagValue, ",") {
			id, path, ok := strings.Cut(strings.TrimSpace(entry), "=")
			if !ok || id == "" || path == "" {
				return nil, fmt.Errorf("invalid taxonomy file %q (expected id=path)", entry)
			}
			a.logger.Debug("adding taxonomy file", "taxonomy", id, "path", path)
			opts = append(opts, naming.WithTaxonomyFile(naming.ParseID(id), path))
		}
	}
	return naming.NewRegistry(data.FS, opts...), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
