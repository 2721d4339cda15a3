package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhattientran/handlergen"
	"github.com/nhattientran/handlergen/internal/generator"
	"github.com/nhattientran/handlergen/internal/generators/handler"
	"github.com/nhattientran/handlergen/internal/output"
)

// UsageLine is printed when no entity name is given.
const UsageLine = "Usage: handlergen <entity_name>"

// dashHint explains how to pass a name cobra would parse as a flag.
const dashHint = "Names starting with '-' go after '--': handlergen -- -user"

// RootCmd creates and returns the handlergen command.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handlergen <entity_name>",
		Short: "Generate a gin HTTP handler for an entity",
		Long: `handlergen writes <entity>_handler.go into the current directory: a gin
handler struct with Create and GetByID endpoints and a create request type,
named after the entity. An existing file with the same name is replaced.

Examples:
  handlergen user            # writes user_handler.go with UserHandler
  handlergen userProfile     # writes userprofile_handler.go with UserProfileHandler
  handlergen order -o internal/handler --diff
  handlergen -- -legacy      # names starting with '-' go after '--'

Every flag can also be set through the environment, e.g.
HANDLERGEN_OUTPUT_DIR=internal/handler.`,
		Version:       handlergen.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	cmd.Flags().StringP("output-dir", "o", ".", "Directory to write the handler file into")
	cmd.Flags().Bool("dry-run", false, "Print the generated file instead of writing it")
	cmd.Flags().Bool("diff", false, "Show a diff against the existing file before overwriting it")
	cmd.Flags().Bool("no-clobber", false, "Fail instead of overwriting an existing file")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	output.SetWriters(out, errOut)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	output.SetVerbose(cfg.Verbose)

	if len(args) == 0 {
		fmt.Fprintln(out, UsageLine)
		output.Step(dashHint)
		return nil
	}

	name := args[0]
	if len(args) > 1 {
		output.Verbose(fmt.Sprintf("Ignoring extra arguments: %v", args[1:]))
	}

	gen := handler.New(cfg.OutputDir)
	result, err := gen.Render(name)
	if err != nil {
		return err
	}
	path := gen.Path(result)
	output.Verbose(fmt.Sprintf("Rendered %s (%d bytes, dry-run=%v, no-clobber=%v)", path, len(result.Content), cfg.DryRun, cfg.NoClobber))

	if cfg.Diff {
		if err := showDiff(out, path, result.Content); err != nil {
			return err
		}
	}

	report := io.Discard
	if cfg.Verbose {
		report = errOut
	}

	err = generator.Execute(cmd.Context(), gen.Operations(result), generator.ExecuteOptions{
		DryRun: cfg.DryRun,
		Force:  !cfg.NoClobber,
		Writer: report,
	})
	if err != nil {
		if errors.Is(err, generator.ErrFileExists) {
			return fmt.Errorf("%w (drop --no-clobber to overwrite)", err)
		}
		return err
	}

	if cfg.DryRun {
		_, err := out.Write(result.Content)
		return err
	}

	output.Success("Generated " + path)
	return nil
}

// showDiff prints what overwriting path would change. A missing file is
// not an error; there is nothing to compare against.
func showDiff(w io.Writer, path string, content []byte) error {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		output.Verbose(fmt.Sprintf("%s does not exist yet", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if bytes.Equal(existing, content) {
		output.Info(fmt.Sprintf("%s is up to date", path))
		return nil
	}

	diff := generator.GenerateDiff(path, path, existing, content, nil)
	if diff == "" {
		output.Info(fmt.Sprintf("%s differs only in its final newline", path))
		return nil
	}

	output.Info(fmt.Sprintf("Changes to %s:", path))
	_, err = fmt.Fprint(w, diff)
	return err
}
