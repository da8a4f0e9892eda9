// Package raw reads and writes floppy images in the traditional flat
// binary layout: sectors one after another, track by track, with no
// header of any kind. Grounded on mfm_read_raw/mfm_write_raw in
// original_source/src/raw.c.
package raw

import (
	"fmt"
	"io"

	"github.com/sergev/mfmdisk/mfm"
)

// ReadImage reads a raw disk image from r. The track count is derived from
// the stream's total size (found by seeking to its end),
// divided by 512 and nsectorsPerTrack, matching mfm_read_raw's
// fstat-based sizing. It is an error for the derived track count to
// exceed mfm.MaxTracks.
func ReadImage(r io.ReadSeeker, nsectorsPerTrack int) (*mfm.Disk, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	ntracks := int(size) / mfm.SectorSize / nsectorsPerTrack
	if ntracks > mfm.MaxTracks {
		return nil, fmt.Errorf("raw: too many tracks = %d, aborted", ntracks)
	}

	disk, err := mfm.NewDisk(ntracks, nsectorsPerTrack)
	if err != nil {
		return nil, err
	}
	for t := 0; t < ntracks; t++ {
		for s := 0; s < nsectorsPerTrack; s++ {
			block, err := disk.Sector(t, s)
			if err != nil {
				return nil, err
			}
			if _, err := io.ReadFull(r, block[:]); err != nil {
				return nil, fmt.Errorf("raw: error reading input file, aborted: %w", err)
			}
		}
	}
	return disk, nil
}

// WriteImage writes disk to w in the same flat binary layout, matching
// mfm_write_raw.
func WriteImage(w io.Writer, disk *mfm.Disk) error {
	for t := 0; t < disk.NTracks; t++ {
		for s := 0; s < disk.NSectorsPerTrack; s++ {
			block, err := disk.Sector(t, s)
			if err != nil {
				return err
			}
			if _, err := w.Write(block[:]); err != nil {
				return err
			}
		}
	}
	return nil
}
