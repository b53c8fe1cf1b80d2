// Package cmd provides the root command and CLI setup for gext.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gext.dev/pkg/gext/internal/adapter"
	"gext.dev/pkg/gext/internal/controller"
	"gext.dev/pkg/gext/internal/domain"
	m "gext.dev/pkg/gext/internal/model"
)

var installer adapter.Installer
var compiler adapter.SchemaCompiler
var manifests adapter.ManifestStore
var treeFactory domain.TreeFSFactory
var workflow domain.Workflow
var ui controller.UI

// installRootFlag overrides the computed extensions directory.
var installRootFlag string

// globalFlag selects the system-wide install root.
var globalFlag bool

// buildDirFlag points at a build-output tree holding generated bundle files.
var buildDirFlag string

// patternFlag overrides the import-statement pattern for all bundles.
var patternFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewPlainUI(rootCmd)
	targetFs := afero.NewOsFs()
	treeFactory = func(sourceDir, buildDir m.Path) adapter.TreeFS {
		return adapter.NewLocalTreeFS(sourceDir, buildDir)
	}
	installer = adapter.NewLocalInstaller(targetFs)
	compiler = adapter.NewGlibSchemaCompiler(targetFs, nil)
	manifests = adapter.NewYAMLManifestStore(targetFs)
	workflow = domain.NewWorkflow(treeFactory, installer, compiler, manifests, ui)
}

const rootLongDescription = `Gext installs GNOME Shell extension bundles: it resolves metadata.json,
extension.js, an optional prefs.js and any declared sources, follows
import statements in the scripts to pick up the rest of the bundle, and
copies everything into a uuid-named directory where the shell finds it.
GSettings schemas are staged and compiled along the way.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gext",
		Short: "GNOME Shell extension install tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&installRootFlag, installRootFlagName, "r",
			viper.GetString(installRootConfigKey),
			"install root directory (overrides the computed extensions dir)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(installRootFlagName), installRootConfigKey)

	cmd.PersistentFlags().BoolVarP(&globalFlag, globalFlagName, "g", viper.GetBool(installGlobalKey), "install into the system data dir instead of the user one")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(globalFlagName), installGlobalKey)

	cmd.PersistentFlags().StringVarP(&buildDirFlag, buildDirFlagName, "b", viper.GetString(buildDirConfigKey), "build-output directory holding generated bundle files")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(buildDirFlagName), buildDirConfigKey)

	cmd.PersistentFlags().StringVar(&patternFlag, patternFlagName, viper.GetString(scanPatternKey), "regex with an (?P<import>...) group recognizing import statements")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(patternFlagName), scanPatternKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseDirs converts positional args into bundle directories, defaulting
// to the current directory.
func parseDirs(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"."}
	}

	dirs := make([]m.Path, 0, len(args))
	for _, arg := range args {
		dirs = append(dirs, m.Path(arg))
	}

	return dirs
}

// bundlesFor builds one Bundle per directory from the shared config plus
// per-invocation extras.
func bundlesFor(dirs []m.Path, uuid string, sources []string, schemas []string) []m.Bundle {
	buildDir := m.Path(viper.GetString(buildDirConfigKey))
	pattern := viper.GetString(scanPatternKey)

	bundles := make([]m.Bundle, 0, len(dirs))
	for _, dir := range dirs {
		extra := make([]m.Path, 0, len(sources))
		for _, src := range sources {
			extra = append(extra, m.Path(src))
		}

		bundles = append(bundles, m.Bundle{
			Dir:            dir,
			BuildDir:       buildDir,
			UUID:           uuid,
			Sources:        extra,
			Schemas:        schemas,
			IncludePattern: pattern,
		})
	}

	return bundles
}
