package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sergev/mfmdisk/mfm"
	"github.com/sergev/mfmdisk/raw"
)

var extractCmd = &cobra.Command{
	Use:   "extract input.mfm output.img",
	Short: "Extract a raw floppy image from an MFM file",
	Args:  cobra.ExactArgs(2),
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
		fout, err := openOutput(cfg, args[1])
		if err != nil {
			return err
		}
		defer fout.Close()

		useAmiga := flagAmiga
		if !useAmiga {
			format, err := mfm.DetectFormat(fin)
			if err != nil {
				return err
			}
			useAmiga = format == mfm.FormatAmiga
		}

		var disk *mfm.Disk
		if useAmiga {
			disk, err = mfm.ReadDiskAmiga(cfg, fin, mfm.MaxTracks)
		} else {
			disk, err = mfm.ReadDiskIBMPC(cfg, fin, mfm.MaxTracks)
		}
		if err != nil {
			return err
		}
		return raw.WriteImage(fout, disk)
	},
}
