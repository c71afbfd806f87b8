// Package commands implements the CLI commands for the bake build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/bake/internal/app"
	"go.trai.ch/bake/internal/build"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for bake.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, mode domain.BuildMode, opts app.Options) (int, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "bake",
		Short:         "Build native executables, mobile projects and shaders for every target",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runBuild,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.Flags()
	flags.Bool("gen-android", false, "Generate a Gradle project for Android")
	flags.Bool("gen-xcode", false, "Generate an XcodeGen project for iOS and macOS")
	flags.Bool("rebuild-shaders", false, "Recompile the WGSL shaders")
	flags.StringP("config", "c", "", "Path to the configuration file (default bake.yaml)")
	flags.IntP("jobs", "j", 0, "Number of platforms built concurrently (default from configuration)")
	flags.Bool("release", false, "Build with optimizations (default from configuration)")
	flags.BoolP("watch", "w", false, "Rebuild whenever a source file changes")
	flags.StringP("output", "o", "auto", "Output mode: auto, tui, or linear")
	flags.Bool("ci", false, "Use linear output (shorthand for --output=linear)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("log-json", false, "Write log records as JSON")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	genAndroid, _ := flags.GetBool("gen-android")
	genXcode, _ := flags.GetBool("gen-xcode")
	rebuildShaders, _ := flags.GetBool("rebuild-shaders")
	configPath, _ := flags.GetString("config")
	jobs, _ := flags.GetInt("jobs")
	watch, _ := flags.GetBool("watch")
	debug, _ := flags.GetBool("debug")
	logJSON, _ := flags.GetBool("log-json")
	output, _ := flags.GetString("output")
	ci, _ := flags.GetBool("ci")

	if ci {
		output = "linear"
	}

	if jobs < 0 {
		return zerr.With(zerr.New("invalid --jobs value: must not be negative"), "jobs", jobs)
	}

	opts := app.Options{
		ConfigPath: configPath,
		Jobs:       jobs,
		Verbose:    debug,
		LogJSON:    logJSON,
		Watch:      watch,
		Output:     output,
	}
	if flags.Changed("release") {
		release, _ := flags.GetBool("release")
		opts.Release = &release
	}

	mode := app.SelectMode(app.Flags{
		GenAndroid:     genAndroid,
		GenXcode:       genXcode,
		RebuildShaders: rebuildShaders,
	})

	status, err := c.app.Run(cmd.Context(), mode, opts)
	if err != nil {
		return err
	}
	if status != 0 {
		return domain.ErrBuildFailed
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
