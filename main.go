package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const defaultOutput = "dist/main.js"

var (
	currentDir, _ = os.Getwd()
	rootCmd       = &cobra.Command{
		Use:   "minipack",
		Short: "Bundle an ES module entry file and its imports into one self-contained script",
		Long: `Discovers every module statically imported from an entry file, lowers each one to a
CommonJS factory and emits a single script with its own module registry, cache and require.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogger(verbose, quiet)
		},
	}
)

var docsCmd = &cobra.Command{
	Use:   "doc-gen",
	Short: "Generate CLI documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doc.GenMarkdownTree(rootCmd, "./docs")
	},
}

// ---------------- shared flags ----------------

var (
	verbose bool
	quiet   bool

	buildCwd         string
	buildConfigPath  string
	buildExternal    []string
	buildConcurrency int
)

func addSharedFlags(command *cobra.Command) {
	command.Flags().StringVarP(&buildCwd, "cwd", "c", currentDir,
		"Working directory the entry and output paths are relative to")
	command.Flags().StringVar(&buildConfigPath, "config", "",
		"Path to minipack.config.json/.yaml (default: looked up in the working directory)")
	command.Flags().StringSliceVar(&buildExternal, "external", []string{},
		"Glob patterns of import specifiers to leave to the host require")
	command.Flags().IntVar(&buildConcurrency, "concurrency", 0,
		"Number of modules extracted in parallel (default 1)")
}

// buildOptionsFromFlags merges flags, the positional entry and the config file.
func buildOptionsFromFlags(args []string, output string) (BuildOptions, error) {
	cwd := ResolveAbsoluteCwd(buildCwd)

	var config *MinipackConfig
	if buildConfigPath != "" {
		loaded, err := LoadConfig(resolveFromDir(cwd, buildConfigPath))
		if err != nil {
			return BuildOptions{}, err
		}
		config = loaded
	} else if found, ok := FindConfig(cwd); ok {
		loaded, err := LoadConfig(found)
		if err != nil {
			return BuildOptions{}, err
		}
		config = loaded
	}
	if config != nil {
		logger.Debug("loaded config", "dir", config.Dir)
	}

	opts := BuildOptions{
		Cwd:         cwd,
		Output:      output,
		External:    buildExternal,
		Concurrency: buildConcurrency,
	}
	if len(args) > 0 {
		opts.Entry = args[0]
	}
	opts = ApplyConfig(opts, config)

	if opts.Entry == "" {
		return BuildOptions{}, fmt.Errorf("no entry file: pass it as an argument or set 'entry' in the config file")
	}
	if opts.Output == "" {
		opts.Output = defaultOutput
	}
	if opts.Concurrency < 0 {
		return BuildOptions{}, fmt.Errorf("--concurrency must be >= 0, got %d", opts.Concurrency)
	}
	return opts, nil
}

// displayPrefix is the directory module paths are shown relative to. Module
// identities have symlinks evaluated, so the prefix needs the same treatment.
func displayPrefix(cwd string) string {
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		return resolved
	}
	return cwd
}

// ---------------- bundle ----------------
var bundleOutput string

var bundleCmd = &cobra.Command{
	Use:   "bundle [entry]",
	Short: "Bundle the entry file and everything it imports into one script",
	Long: `Builds the module graph of the entry file and writes a single script that
contains every module, a module cache and a require implementation.
The output file is replaced on every run and is never written when the build fails.`,
	Example: "minipack bundle src/index.js -o dist/main.js",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptionsFromFlags(args, bundleOutput)
		if err != nil {
			return err
		}

		graph, _, err := Bundle(cmd.Context(), opts)
		if err != nil {
			return err
		}

		success := color.New(color.FgGreen)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s into %s\n",
			success.Sprint("✔ Bundled"),
			pluralize(graph.Len(), "module", "modules"),
			RelativeToCwd(NormalizePathForInternal(resolveFromDir(opts.Cwd, opts.Output)), opts.Cwd))
		return nil
	},
}

// ---------------- graph ----------------
var graphJSON bool

var graphCmd = &cobra.Command{
	Use:     "graph [entry]",
	Short:   "Print the module graph of the entry file",
	Long:    `Lists every module that would be bundled, in registry order, with the imports each one resolves.`,
	Example: "minipack graph src/index.js --json",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptionsFromFlags(args, "")
		if err != nil {
			return err
		}

		graph, err := BuildModuleGraph(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if graphJSON {
			out, err := GraphToJSON(graph)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), FormatGraph(graph, displayPrefix(opts.Cwd)))
		return nil
	},
}

// ---------------- circular ----------------
var circularCmd = &cobra.Command{
	Use:   "circular [entry]",
	Short: "Report import cycles in the module graph",
	Long: `Finds import cycles among the modules reachable from the entry file.
Cycles are bundled correctly; a module in a cycle sees the partially initialised exports of the module that is still loading.`,
	Example: "minipack circular src/index.js",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptionsFromFlags(args, "")
		if err != nil {
			return err
		}

		graph, err := BuildModuleGraph(cmd.Context(), opts)
		if err != nil {
			return err
		}

		cycles := FindCircularDependencies(graph)
		fmt.Fprint(cmd.OutOrStdout(), FormatCircularDependencies(cycles, displayPrefix(opts.Cwd), graph))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log every extracted module")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Only log errors")

	// bundle flags
	addSharedFlags(bundleCmd)
	bundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "",
		"Output file, replaced on every run (default: "+defaultOutput+")")

	// graph flags
	addSharedFlags(graphCmd)
	graphCmd.Flags().BoolVar(&graphJSON, "json", false,
		"Print the graph as JSON")

	// circular flags
	addSharedFlags(circularCmd)

	rootCmd.AddCommand(bundleCmd, graphCmd, circularCmd, docsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("minipack failed", "err", err)
		os.Exit(1)
	}
}
