package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sergev/mfmdisk/mfm"
)

var infoCmd = &cobra.Command{
	Use:   "info input.mfm",
	Short: "Show information about an MFM file",
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

		format, err := mfm.DetectFormat(fin)
		if err != nil {
			return err
		}

		ntracks := 1
		if cfg.Verbose > 0 {
			ntracks = mfm.MaxTracks
		}

		if format == mfm.FormatAmiga {
			cfg.logf("Format: Amiga\n")
			for t := 0; t < ntracks; t++ {
				if !printTrackAnalysisAmiga(cfg, fin, t) {
					break
				}
			}
		} else {
			cfg.logf("Format: IBM PC\n")
			for t := 0; t < ntracks; t++ {
				printTrackAnalysisIBMPC(cfg, fin, t)
			}
		}
		return nil
	},
}

func printTrackAnalysisIBMPC(cfg *mfm.Config, fin io.ReadSeeker, t int) {
	cfg.Diag.Write([]byte("\n"))
	r, err := mfm.Seek(fin, t)
	if err != nil {
		return
	}
	a := mfm.AnalyzeTrackIBMPC(cfg, r)
	cylinder, head := mfm.CylinderHead(t)
	fmt.Fprintf(cfg.Diag, "Track %d/%d: %d sectors per track\n", cylinder, head, a.NSectorsPerTrack)
	if a.NSectorsPerTrack < 1 {
		return
	}
	fmt.Fprintf(cfg.Diag, "Order of sectors:")
	for _, s := range a.Order {
		fmt.Fprintf(cfg.Diag, " %d", s+1)
	}
	fmt.Fprintf(cfg.Diag, "\n")

	std := 80 * 8
	if a.NSectorsPerTrack == 10 {
		std = 46 * 8
	}
	fmt.Fprintf(cfg.Diag, "Sector gap:")
	for _, g := range a.SectorGapBits {
		fmt.Fprintf(cfg.Diag, " %d", g)
	}
	fmt.Fprintf(cfg.Diag, " bits (std %d)\n", std)

	fmt.Fprintf(cfg.Diag, "Data gap:")
	for _, g := range a.DataGapBits {
		fmt.Fprintf(cfg.Diag, " %d", g)
	}
	fmt.Fprintf(cfg.Diag, " bits (std %d)\n", 22*8)

	for _, s := range a.Missing {
		fmt.Fprintf(cfg.Diag, "No sector %d\n", s+1)
	}
}

func printTrackAnalysisAmiga(cfg *mfm.Config, fin io.ReadSeeker, t int) bool {
	cfg.Diag.Write([]byte("\n"))
	r, err := mfm.Seek(fin, t)
	if err != nil {
		return false
	}
	a := mfm.AnalyzeTrackAmiga(cfg, r)
	cylinder, head := mfm.CylinderHead(t)
	fmt.Fprintf(cfg.Diag, "Track %d/%d: %d sectors per track\n", cylinder, head, a.NSectorsPerTrack)
	if a.NSectorsPerTrack < 1 {
		return cfg.Verbose > 0
	}
	fmt.Fprintf(cfg.Diag, "Order of sectors:")
	for _, s := range a.Order {
		fmt.Fprintf(cfg.Diag, " %d", s+1)
	}
	fmt.Fprintf(cfg.Diag, "\n")

	fmt.Fprintf(cfg.Diag, "Sector gap:")
	for _, g := range a.SectorGapBits {
		fmt.Fprintf(cfg.Diag, " %d", g)
	}
	fmt.Fprintf(cfg.Diag, " bits (std %d)\n", 0)

	for _, s := range a.Missing {
		fmt.Fprintf(cfg.Diag, "No sector %d\n", s+1)
	}
	return cfg.Verbose > 0
}
