// Package main is the entry point for sysexgen CLI
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/james-see/sysexgen/pkg/api"
	"github.com/james-see/sysexgen/pkg/fixtures"
	"github.com/james-see/sysexgen/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputDir     string
	counts        []int
	configFile    string
	writeManifest bool
	serverPort    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sysexgen",
	Short: "Generate MIDI SysEx test fixture files",
	Long: `sysexgen writes binary MIDI System Exclusive test fixtures. Each file holds
F0, a run of data bytes counting up from 0 and wrapping at 128, and F7.

Examples:
  sysexgen generate -o testdata
  sysexgen generate -c 0,1,127,128,129 --manifest
  sysexgen generate --config sysexgen.toml
  sysexgen verify testdata
  sysexgen tui
  sysexgen serve --port 8080`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the fixture files",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check fixture files in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the fixture file names that would be generated",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	// generate command
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default \".\")")
	generateCmd.Flags().IntSliceVarP(&counts, "counts", "c", nil, "Data byte counts to generate (default set if empty)")
	generateCmd.Flags().StringVar(&configFile, "config", "", "TOML config file")
	generateCmd.Flags().BoolVar(&writeManifest, "manifest", false, "Also write manifest.toml with checksums")

	// list command
	listCmd.Flags().IntSliceVarP(&counts, "counts", "c", nil, "Data byte counts (default set if empty)")

	// serve command
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig merges the config file with flags; flags win
func loadConfig(cmd *cobra.Command) (fixtures.Config, error) {
	cfg := fixtures.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = fixtures.LoadConfig(configFile)
		if err != nil {
			return cfg, err
		}
	}

	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("counts") {
		cfg.Counts = counts
	}
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = writeManifest
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gen := fixtures.NewGeneratorFromConfig(cfg)
	written, err := gen.Generate(cmd.Context())
	for _, f := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", f.Path, len(f.Data))
	}
	if err != nil {
		return err
	}

	if cfg.Manifest {
		m, err := fixtures.BuildManifest(written)
		if err != nil {
			return err
		}
		if err := fixtures.WriteManifest(gen.OutputDir(), m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", fixtures.ManifestName)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d fixtures in %s\n", len(written), gen.OutputDir())
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	reports, err := fixtures.Verify(dir)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no fixture files found in %s", dir)
	}

	for _, r := range reports {
		if r.OK() {
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", r.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", r.Name, r.Err)
		}
	}

	if failed := fixtures.Failed(reports); len(failed) > 0 {
		return fmt.Errorf("%d of %d fixtures failed verification", len(failed), len(reports))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "All %d fixtures OK\n", len(reports))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	list := counts
	if len(list) == 0 {
		list = fixtures.DefaultCounts
	}
	for _, c := range list {
		if c < 0 {
			return errors.New("counts must not be negative")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d bytes\n", fixtures.FileName(c), c+2)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
