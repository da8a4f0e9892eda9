package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sergev/mfmdisk/mfm"
)

var dumpCmd = &cobra.Command{
	Use:   "dump input.mfm",
	Short: "Dump the raw half-bit contents of an MFM file",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fin, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer fin.Close()

		return mfm.Dump(cfg, fin, mfm.MaxTracks)
	},
}
