// Package cmd implements the mfmdisk command-line surface: info, extract,
// create and dump, plus the shared --amiga/--bk/--sectors-per-track/
// --verbose flags. Grounded on the teacher's cmd/root.go cobra tree (root
// command + one file per subcommand, cobra.CheckErr for fatal errors) and
// main.c's getopt_long flag/action dispatch.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sergev/mfmdisk/config"
	"github.com/sergev/mfmdisk/mfm"
)

var (
	flagAmiga           bool
	flagBK              bool
	flagSectorsPerTrack int
	flagVerbose         int
)

const version = "1.0"

var rootCmd = &cobra.Command{
	Use:     "mfmdisk",
	Short:   "Convert between MFM disk images and raw floppy images",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagAmiga, "amiga", "a", false, "use Amiga format (default IBM PC)")
	rootCmd.PersistentFlags().BoolVarP(&flagBK, "bk", "b", false, "use BK-0010 format")
	rootCmd.PersistentFlags().IntVarP(&flagSectorsPerTrack, "sectors-per-track", "s", 9, "use N sectors per track")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "verbose mode")
	rootCmd.SetVersionTemplate("Version: {{.Version}}\n")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(dumpCmd)
}

// Execute runs the root command, matching main.c's top-level dispatch.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig resolves the persistent gap-size configuration and applies the
// CLI's verbosity flag on top of it, matching mfm_verbose's accumulation
// across repeated -v flags.
func loadConfig() (*mfm.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Verbose += flagVerbose
	return cfg, nil
}

// sectorsPerTrackForCreate applies the --amiga/--bk overrides to
// --sectors-per-track, matching main.c's 'a'/'b' getopt cases.
func sectorsPerTrackForCreate() int {
	switch {
	case flagAmiga:
		return 11
	case flagBK:
		return 10
	default:
		return flagSectorsPerTrack
	}
}

// openInput opens filename for reading, treating "-" as stdin, matching
// open_input.
func openInput(filename string) (*os.File, error) {
	if filename == "-" {
		return os.Stdin, nil
	}
	return os.Open(filename)
}

// openOutput opens filename for writing, treating "-" as stdout and
// redirecting cfg.Diag to stderr in that case, matching open_output.
func openOutput(cfg *mfm.Config, filename string) (*os.File, error) {
	if filename == "-" {
		cfg.Diag = os.Stderr
		return os.Stdout, nil
	}
	return os.Create(filename)
}
