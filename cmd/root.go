package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tplrename/pkg/ignore"
	"tplrename/pkg/logging"
	"tplrename/pkg/rename"
	"tplrename/pkg/version"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// IgnoreFileEnv names the environment variable consulted when --ignore-file is not set.
const IgnoreFileEnv = "TPLRENAME_IGNORE_FILE"

type rootOptions struct {
	root        string
	name        string
	placeholder string
	ignoreFile  string
	configPath  string
	ignore      []string
	dryRun      bool
	skipBinary  bool
	debug       bool
}

// NewRootCmd builds the tplrename command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tplrename",
		Short: "Rename a freshly cloned project template",
		Long: `tplrename replaces the template placeholder in every file name, directory
name and file body below the root directory with your project name.
Paths listed in the root .gitignore and the .git directory are left alone.`,
		Example: `tplrename --root ./MyTemplate --name Contoso`,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := logging.Setup(opts.debug, "tplrename", version.Get().Version); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, opts, logging.Logger)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.root, "root", "", "Template root directory (default: directory of the executable)")
	flags.StringVarP(&opts.name, "name", "n", "", "New project name; prompts when not set")
	flags.StringVar(&opts.placeholder, "placeholder", rename.DefaultPlaceholder, "Placeholder string to replace")
	flags.StringVar(&opts.ignoreFile, "ignore-file", ignore.DefaultFileName, "Ignore file name inside the root directory (env "+IgnoreFileEnv+")")
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default: <root>/"+rename.DefaultConfigFile+")")
	flags.StringArrayVarP(&opts.ignore, "ignore", "i", nil, "Additional ignore pattern (repeatable)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Log planned renames and rewrites without changing anything")
	flags.BoolVar(&opts.skipBinary, "skip-binary", false, "Rename binary files but leave their content untouched")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command with styled help and error output.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		NewRootCmd(),
		fang.WithVersion(version.Get().Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

// runRename resolves the run configuration, asks for the project name when
// needed and renames the tree.
func runRename(cmd *cobra.Command, opts *rootOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	flags := cmd.Flags()

	root := opts.root
	if root == "" {
		var err error
		root, err = rename.DefaultRoot()
		if err != nil {
			return err
		}
	}

	args := &rename.Arguments{
		Root:           root,
		IgnorePatterns: opts.ignore,
		DryRun:         opts.dryRun,
		SkipBinary:     opts.skipBinary,
	}
	if flags.Changed("placeholder") {
		args.OldString = opts.placeholder
	}
	if flags.Changed("ignore-file") {
		args.IgnoreFile = opts.ignoreFile
	} else if env := os.Getenv(IgnoreFileEnv); env != "" {
		args.IgnoreFile = env
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = filepath.Join(root, rename.DefaultConfigFile)
	}
	cfg, err := rename.LoadFileConfig(configPath)
	if err != nil {
		logger.Error("Failed to load config file", zap.String("filePath", configPath), zap.Error(err))
		return err
	}
	if cfg != nil {
		logger.Debug("Loaded config file", zap.String("filePath", configPath))
		cfg.Apply(args)
	}

	if args.OldString == "" {
		args.OldString = opts.placeholder
	}
	if args.IgnoreFile == "" {
		args.IgnoreFile = opts.ignoreFile
	}

	if flags.Changed("name") {
		args.NewString = opts.name
	} else {
		args.NewString, err = rename.PromptProjectName(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			logger.Error("Failed to read user input", zap.Error(err))
			return err
		}
	}

	if _, err := rename.Run(args, logger); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), rename.ConfirmationMessage(args.NewString))
	return nil
}
