package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bouwvrij",
	Short: "Bouwvrij - permit-free outbuilding checks against Dutch zoning plans",
	Long: `Bouwvrij assesses whether a planned outbuilding (bijbehorend bouwwerk)
at a given address is exempt from permitting under the municipal zoning
plans that govern the plot.

It retrieves the relevant articles from the applicable Bestemmingsplan or
Omgevingsplan documents, asks a reasoning model for a draft verdict, and
then cross-checks that verdict against the retrieved text: an affirmative
answer without explicit permit-free language in the evidence is downgraded
to Conditional.

Bouwvrij guarantees consistency between evidence and decision, not legal
correctness.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Cobra's own error printing is
// silenced on rootCmd, so the failure message is written here; main
// only maps the returned error to the exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bouwvrij v0.3.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.bouwvrij/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and BOUWVRIJ_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.bouwvrij")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BOUWVRIJ")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
