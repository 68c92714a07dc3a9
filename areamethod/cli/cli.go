package cli

import (
	"github.com/npillmayer/areamethod"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "areamethod",
	Short: "An automated prover for plane geometry, using the area method",
	Long: `Welcome to areamethod V0.1 (experimental)

areamethod proves geometry theorems stated as point constructions and an
objective, using the area method of Chou, Gao and Zhang.

areamethod is able to run in interactive mode or work on problem files in
batch-mode.  If run in interactive mode, it will prompt for statements of
the problem language in a terminal REPL.

`,
	Run: runREPLCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by main().
func Execute() {
	rootCmd.AddCommand(proveCmd, evalCmd, checkCmd, replCmd)
	if rootCmd.Execute() != nil {
		areamethod.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	rootCmd.PersistentFlags().BoolP("interactive", "i", false, "Force run in interactive mode")
	rootCmd.PersistentFlags().String("logfile", "stderr", "URL of log output location")
	rootCmd.PersistentFlags().String("flavor", "", "Geometry to work in: plane or affine (default from problem)")
	rootCmd.PersistentFlags().String("backend", "", "Elimination backend: substitution or prem (default substitution)")
	rootCmd.PersistentFlags().Int("maxrounds", 0, "Bound on rewriting rounds per construction")
	rootCmd.PersistentFlags().Int("workers", 4, "Number of problems checked concurrently")
	rootCmd.PersistentFlags().Bool("debug", false, "Trace the engine at debug level")
}
