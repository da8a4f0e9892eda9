package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sergev/mfmdisk/mfm"
	"github.com/sergev/mfmdisk/raw"
)

var createCmd = &cobra.Command{
	Use:   "create output.mfm [input.img]",
	Short: "Create an MFM file from a raw floppy image, or a blank one",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fout, err := openOutput(cfg, args[0])
		if err != nil {
			return err
		}
		defer fout.Close()

		nsectorsPerTrack := sectorsPerTrackForCreate()

		var disk *mfm.Disk
		if len(args) >= 2 {
			fin, err := openInput(args[1])
			if err != nil {
				return err
			}
			defer fin.Close()
			disk, err = raw.ReadImage(fin, nsectorsPerTrack)
			if err != nil {
				return err
			}
		} else {
			disk, err = mfm.NewDisk(mfm.MaxTracks, nsectorsPerTrack)
			if err != nil {
				return err
			}
		}

		if flagAmiga {
			return mfm.WriteDiskAmiga(cfg, fout, disk)
		}
		return mfm.WriteDiskIBMPC(cfg, fout, disk, flagBK)
	},
}
