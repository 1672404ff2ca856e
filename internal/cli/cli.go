// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dirmap/dirmap/internal/config"
	"github.com/dirmap/dirmap/internal/ignore"
	"github.com/dirmap/dirmap/internal/output"
	"github.com/dirmap/dirmap/internal/render"
	"github.com/dirmap/dirmap/internal/services/clipboard"
	"github.com/dirmap/dirmap/internal/utils"
)

const (
	rootUse              = "dirmap [path]"
	rootShortDescription = "render a directory tree with file type annotations"
	rootLongDescription  = `dirmap renders a textual tree of a filesystem directory, annotating
recognized file types with descriptive comments. Depth, per-directory file
count, and substring ignore patterns bound the output, which goes to the
console, a file, or the clipboard.`
	// rootUsageExample demonstrates common invocations.
	rootUsageExample = `  # Render the current directory three levels deep
  dirmap --max-depth 3

  # Cap each directory at five files and skip caches
  dirmap --max-files 5 --ignore __pycache__ --ignore .git ./project

  # Write the tree to a file
  dirmap -o structure.txt ./project`

	maxDepthFlagName  = "max-depth"
	maxFilesFlagName  = "max-files"
	ignoreFlagName    = "ignore"
	outputFlagName    = "output"
	outputFlagShort   = "o"
	copyFlagName      = "copy"
	gitignoreFlagName = "gitignore"
	configFlagName    = "config"
	versionFlagName   = "version"
	versionFlagShort  = "v"

	maxDepthFlagDescription  = "inclusive depth bound (negative for unlimited)"
	maxFilesFlagDescription  = "maximum files displayed per directory (negative for unlimited)"
	ignoreFlagDescription    = "substring pattern excluding matching paths (repeatable)"
	outputFlagDescription    = "write the tree to a file instead of standard output"
	copyFlagDescription      = "copy the rendered tree to the clipboard"
	gitignoreFlagDescription = "honor .gitignore files under the root"
	configFlagDescription    = "configuration file overriding the default lookup"
	versionFlagDescription   = "display application version"

	versionTemplate    = "dirmap version: %s\n"
	confirmationFormat = "Output written to %s\n"
	summaryLineFormat  = "Generated in %.2f seconds"

	defaultPath        = "."
	unlimitedFlagValue = -1

	errorAbsoluteRootFormat = "getting absolute path for %s: %w"
	errorRootMissingFormat  = "path '%s' does not exist"
	errorStatRootFormat     = "stat failed for '%s': %w"
)

// Execute runs the dirmap application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// renderFlags stores the flag values of the root command.
type renderFlags struct {
	maxDepth        int
	maxFiles        int
	ignorePatterns  []string
	outputPath      string
	copyToClipboard bool
	useGitignore    bool
	configPath      string
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var flagValues renderFlags

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runRender(command, rootPath, flagValues)
		},
	}

	rootCommand.Flags().IntVar(&flagValues.maxDepth, maxDepthFlagName, unlimitedFlagValue, maxDepthFlagDescription)
	rootCommand.Flags().IntVar(&flagValues.maxFiles, maxFilesFlagName, unlimitedFlagValue, maxFilesFlagDescription)
	rootCommand.Flags().StringArrayVar(&flagValues.ignorePatterns, ignoreFlagName, nil, ignoreFlagDescription)
	rootCommand.Flags().StringVarP(&flagValues.outputPath, outputFlagName, outputFlagShort, "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&flagValues.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&flagValues.useGitignore, gitignoreFlagName, false, gitignoreFlagDescription)
	rootCommand.Flags().StringVar(&flagValues.configPath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().BoolVarP(&showVersion, versionFlagName, versionFlagShort, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	return rootCommand
}

// runRender resolves configuration defaults, validates the root, and streams
// the rendered tree followed by the elapsed-time summary through the sink.
func runRender(command *cobra.Command, rootPath string, flagValues renderFlags) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: flagValues.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	applyConfigurationDefaults(command, &flagValues, applicationConfiguration)

	absoluteRootPath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return fmt.Errorf(errorAbsoluteRootFormat, rootPath, absoluteError)
	}
	if _, statError := os.Stat(absoluteRootPath); statError != nil {
		if os.IsNotExist(statError) {
			return fmt.Errorf(errorRootMissingFormat, rootPath)
		}
		return fmt.Errorf(errorStatRootFormat, rootPath, statError)
	}

	matcher := ignore.NewMatcher(flagValues.ignorePatterns)
	if flagValues.useGitignore {
		matcher.WithGitignore(absoluteRootPath)
	}

	sink, sinkError := buildSink(command, flagValues)
	if sinkError != nil {
		return sinkError
	}

	renderer := render.NewRenderer(sink, render.Options{
		MaxDepth: flagValues.maxDepth,
		MaxFiles: flagValues.maxFiles,
		Matcher:  matcher,
	})

	startTime := time.Now()
	if renderError := renderer.Render(absoluteRootPath); renderError != nil {
		_ = sink.Close()
		return renderError
	}
	elapsedSeconds := time.Since(startTime).Seconds()

	if writeError := sink.WriteLine(""); writeError != nil {
		_ = sink.Close()
		return writeError
	}
	if writeError := sink.WriteLine(fmt.Sprintf(summaryLineFormat, elapsedSeconds)); writeError != nil {
		_ = sink.Close()
		return writeError
	}
	return sink.Close()
}

// applyConfigurationDefaults fills flag values the user did not set
// explicitly from the loaded configuration.
func applyConfigurationDefaults(command *cobra.Command, flagValues *renderFlags, applicationConfiguration config.ApplicationConfiguration) {
	changedFlags := command.Flags()
	if !changedFlags.Changed(maxDepthFlagName) && applicationConfiguration.MaxDepth != nil {
		flagValues.maxDepth = *applicationConfiguration.MaxDepth
	}
	if !changedFlags.Changed(maxFilesFlagName) && applicationConfiguration.MaxFiles != nil {
		flagValues.maxFiles = *applicationConfiguration.MaxFiles
	}
	if !changedFlags.Changed(ignoreFlagName) && len(applicationConfiguration.Ignore) > 0 {
		flagValues.ignorePatterns = applicationConfiguration.Ignore
	}
	if !changedFlags.Changed(outputFlagName) && applicationConfiguration.Output != "" {
		flagValues.outputPath = applicationConfiguration.Output
	}
	if !changedFlags.Changed(copyFlagName) && applicationConfiguration.Copy != nil {
		flagValues.copyToClipboard = *applicationConfiguration.Copy
	}
	if !changedFlags.Changed(gitignoreFlagName) && applicationConfiguration.UseGitignore != nil {
		flagValues.useGitignore = *applicationConfiguration.UseGitignore
	}
}

// buildSink selects the sink for the render: the command's stdout by default,
// a locked file when --output is set, teed to the clipboard when --copy is set.
func buildSink(command *cobra.Command, flagValues renderFlags) (output.LineSink, error) {
	var sink output.LineSink
	if flagValues.outputPath != "" {
		fileSink, fileSinkError := output.NewFileSink(flagValues.outputPath, func(writtenPath string) {
			fmt.Fprintf(command.OutOrStdout(), confirmationFormat, writtenPath)
		})
		if fileSinkError != nil {
			return nil, fileSinkError
		}
		sink = fileSink
	} else {
		sink = output.NewWriterSink(command.OutOrStdout())
	}
	if flagValues.copyToClipboard {
		sink = output.NewClipboardSink(sink, clipboard.NewService())
	}
	return sink, nil
}
