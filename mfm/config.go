package mfm

import (
	"fmt"
	"io"
	"os"
)

// Default gap sizes and fill byte, in bytes, for the IBM-PC format engine.
// Mirrors INDEX_GAP/DATA_GAP/SECTOR_GAP_9/SECTOR_GAP_10 in the original
// mfm.h and the mfm_gap_byte/mfm_index_gap/mfm_sector_gap/mfm_data_gap
// globals in main.c.
const (
	DefaultGapByte     = 0x4e
	DefaultIndexGap    = 42 // before first sector
	DefaultDataGap     = 22 // between sector mark and data
	DefaultSectorGap9  = 80 // 9 sectors/track (720K)
	DefaultSectorGap10 = 46 // 10 sectors/track (800K)
)

// Config bundles the process-wide knobs the original C program kept as
// module-level globals (mfm_verbose, mfm_err, mfm_gap_byte, mfm_index_gap,
// mfm_sector_gap, mfm_data_gap) into an immutable value passed by reference
// into every engine entry point, per the "global state" design note. A zero
// Config is not usable; build one with NewConfig.
type Config struct {
	// Diag receives diagnostic output (recoverable-error and warning
	// messages, analysis reports, bit dumps). Corresponds to mfm_err.
	Diag io.Writer

	// Verbose is the repeat count of -v/--verbose. 0 means quiet.
	Verbose int

	// GapByte is the filler value written between records.
	GapByte byte

	// IndexGap is the gap, in bytes, before the first sector.
	IndexGap int

	// SectorGap is the gap, in bytes, between sectors. Zero means "pick the
	// IBM-PC standard gap for the track's sector count" (80 for 9
	// sectors/track, 46 for 10).
	SectorGap int

	// DataGap is the gap, in bytes, between a sector's ID mark and its data
	// mark.
	DataGap int
}

// NewConfig returns a Config with the original program's default gap sizes,
// diagnostics routed to stdout (matching "mfm_err = stdout" in main.c).
func NewConfig() *Config {
	return &Config{
		Diag:      os.Stdout,
		GapByte:   DefaultGapByte,
		IndexGap:  DefaultIndexGap,
		DataGap:   DefaultDataGap,
		SectorGap: 0,
	}
}

// sectorGap returns the configured sector gap, or the IBM-PC standard gap
// for nsectorsPerTrack when none was configured.
func (c *Config) sectorGap(nsectorsPerTrack int) int {
	if c.SectorGap != 0 {
		return c.SectorGap
	}
	if nsectorsPerTrack == 10 {
		return DefaultSectorGap10
	}
	return DefaultSectorGap9
}

func (c *Config) logf(format string, args ...interface{}) {
	if c.Diag == nil {
		return
	}
	fmt.Fprintf(c.Diag, format, args...)
}
