package mfm

import (
	"fmt"
	"io"
)

// IBM-PC sync tags.
const (
	tagIndexAddressMark = 0xfc
	tagIDAddressMark    = 0xfe
	tagDataAddressMark  = 0xfb
)

// ScanIBMPC advances reader bit by bit until it finds an IBM-PC sync mark
// (00-A1-A1-A1 for an ID or data mark, 00-C2-C2-C2 for the index mark),
// primes its rolling history the same way as the original's 0x13713713
// seed so the all-zero state can never spuriously match, and resyncs to a
// half-bit boundary whenever the history goes all-ones. Returns the tag
// byte immediately following the sync and the number of bits consumed up to
// the end of the sync (not counting the tag byte), matching mfm_scan_ibmpc.
func ScanIBMPC(r *Reader) (tag int, nbitsRead int, err error) {
	history := uint32(0x13713713)
	for {
		bit, berr := r.ReadBit()
		if berr != nil {
			return -1, nbitsRead, berr
		}
		history = history<<1 | uint32(bit)
		nbitsRead++

		if history == 0xffffffff {
			r.ReadHalfBit()
			history = 0
			continue
		}

		if history == 0x00a1a1a1 || history == 0x00c2c2c2 {
			b, berr := r.ReadByte()
			if berr != nil {
				return -1, nbitsRead, berr
			}
			return int(b), nbitsRead, nil
		}
	}
}

// ReadSectorIBMPC reads the next complete sector from an IBM-PC track,
// scanning past any spurious or mismatched marks exactly as
// mfm_read_sector_ibmpc does: a header checksum mismatch is logged and
// scanning continues with the next ID mark; a cylinder/head mismatch or
// wrong block-size field is logged as a warning but the sector is kept;
// an ID mark immediately following another ID mark (tag 0xFE where a data
// mark was expected) restarts from the ident step; any data-mark tag other
// than 0xFB is logged as a warning; a data checksum mismatch is logged but
// the (possibly corrupt) sector is still returned. If non-nil, sectorGap
// accumulates the bits consumed finding the ID mark and dataGap receives the
// bits consumed finding the data mark; both still include the 15-byte
// zero-and-sync prelude of the mark, which AnalyzeTrackIBMPC subtracts.
// Returns the 0-based sector
// number, or -1 at end of track.
func ReadSectorIBMPC(cfg *Config, r *Reader, data []byte) (sector int, err error) {
	return readSectorIBMPC(cfg, r, data, nil, nil)
}

func readSectorIBMPC(cfg *Config, r *Reader, data []byte, sectorGap, dataGap *int) (int, error) {
	if sectorGap != nil {
		*sectorGap = 0
	}
	cylinder, head := CylinderHead(r.Track())
	for {
		tag, gap, err := ScanIBMPC(r)
		if sectorGap != nil {
			*sectorGap += gap
		}
		if tag < 0 {
			return -1, err
		}
		if tag != tagIDAddressMark {
			if cfg.Verbose > 0 {
				extra := ""
				if sectorGap != nil {
					extra = fmt.Sprintf(", gap %d bits", *sectorGap-15*8)
					*sectorGap = 0
				}
				cfg.logf("Track %d/%d: tag %02X%s\n", cylinder, head, tag, extra)
			}
			continue
		}

	ident:
		gotCyl, _ := r.ReadByte()
		gotHead, _ := r.ReadByte()
		gotSector, _ := r.ReadByte()
		gotSize, _ := r.ReadByte()
		hi, _ := r.ReadByte()
		lo, errb := r.ReadByte()
		if errb != nil {
			return -1, errb
		}
		headerSum := uint16(hi)<<8 | uint16(lo)

		mySum := CRC16CCITTByte(HeaderCRCSeed, gotCyl)
		mySum = CRC16CCITTByte(mySum, gotHead)
		mySum = CRC16CCITTByte(mySum, gotSector)
		mySum = CRC16CCITTByte(mySum, gotSize)
		if mySum != headerSum {
			cfg.logf("Track %d/%d: header sum %04x, expected %04x\n",
				cylinder, head, mySum, headerSum)
			continue
		}
		if track := int(gotCyl)*2 + int(gotHead); track != r.Track() {
			cfg.logf("Track %d/%d sector %d: incorrect c/h = %d/%d\n",
				cylinder, head, gotSector, gotCyl, gotHead)
		}
		if gotSize != 2 {
			cfg.logf("Track %d/%d sector %d: incorrect block size = %d\n",
				cylinder, head, gotSector, gotSize)
		}

		var gap2 int
		tag, gap, err = ScanIBMPC(r)
		gap2 = gap
		if tag < 0 {
			return -1, err
		}
		if dataGap != nil {
			*dataGap = gap2
		}
		if tag == tagIDAddressMark {
			if sectorGap != nil {
				*sectorGap += gap2 + 6*8
			}
			if cfg.Verbose > 0 {
				cfg.logf("Track %d/%d sector %d: incorrect data tag %02X\n",
					cylinder, head, gotSector, tag)
			}
			goto ident
		}
		if tag != tagDataAddressMark {
			cfg.logf("Track %d/%d sector %d: invalid tag %02X\n",
				cylinder, head, gotSector, tag)
		}

		buf, errb := r.ReadBytes(SectorSize)
		if errb != nil {
			return -1, errb
		}
		copy(data, buf)
		dhi, _ := r.ReadByte()
		dlo, errb := r.ReadByte()
		if errb != nil {
			return -1, errb
		}
		dataSum := uint16(dhi)<<8 | uint16(dlo)

		myDataSum := CRC16CCITTByte(DataCRCSeed, byte(tag))
		myDataSum = CRC16CCITT(myDataSum, data[:SectorSize])
		if myDataSum != dataSum {
			cfg.logf("Track %d/%d sector %d: data sum %04x, expected %04x\n",
				cylinder, head, gotSector, myDataSum, dataSum)
		}
		return int(gotSector) - 1, nil
	}
}

// ReadTrackIBMPC reads every sector it can find on one IBM-PC track into
// disk, auto-detecting whether track 0 carries 9 or 10 sectors (a track
// missing sector index 9 is assumed to be a 9-sectors/track disk), exactly
// as mfm_read_ibmpc does.
func ReadTrackIBMPC(cfg *Config, stream io.ReadSeeker, disk *Disk, t int) error {
	r, err := Seek(stream, t)
	if err != nil {
		return err
	}
	haveSector := make([]bool, MaxSectorsPerTrack)
	var block [SectorSize]byte
	for {
		s, err := ReadSectorIBMPC(cfg, r, block[:])
		if s < 0 {
			if err == ErrEndOfTrack || err == nil {
				break
			}
			return err
		}
		if s >= disk.NSectorsPerTrack {
			cylinder, head := CylinderHead(t)
			cfg.logf("Track %d/%d: too large sector number %d\n", cylinder, head, s+1)
			continue
		}
		haveSector[s] = true
		dst, derr := disk.Sector(t, s)
		if derr != nil {
			return derr
		}
		copy(dst[:], block[:])
	}
	if t == 0 && !haveSector[9] && disk.NSectorsPerTrack == 10 {
		disk.NSectorsPerTrack = 9
	}
	missing := false
	cylinder, head := CylinderHead(t)
	var msg string
	for s := 0; s < disk.NSectorsPerTrack; s++ {
		if !haveSector[s] {
			if !missing {
				msg = fmt.Sprintf("Track %d/%d: no sector", cylinder, head)
				missing = true
			}
			msg += fmt.Sprintf(" %d", s)
		}
	}
	if missing {
		cfg.logf("%s\n", msg)
	}
	return nil
}

// ReadDiskIBMPC reads ntracks tracks of an IBM-PC MFM stream into a new
// Disk, matching mfm_read_ibmpc's ntracks parameter and its 10-then-9
// sector-count auto-detection.
func ReadDiskIBMPC(cfg *Config, stream io.ReadSeeker, ntracks int) (*Disk, error) {
	disk, err := NewDisk(ntracks, 10)
	if err != nil {
		return nil, err
	}
	for t := 0; t < ntracks; t++ {
		if err := ReadTrackIBMPC(cfg, stream, disk, t); err != nil {
			return nil, err
		}
	}
	return disk, nil
}

// WriteDiskIBMPC writes disk out as an IBM-PC MFM stream, one track at a
// time, matching mfm_write_ibmpc.
func WriteDiskIBMPC(cfg *Config, w io.Writer, disk *Disk, skipIndexMark bool) error {
	if cfg.Verbose > 0 {
		cfg.logf("Creating %d tracks, %d sectors per track\n", disk.NTracks, disk.NSectorsPerTrack)
	}
	for t := 0; t < disk.NTracks; t++ {
		cylinder, head := CylinderHead(t)
		sectors := make([][SectorSize]byte, disk.NSectorsPerTrack)
		for s := 0; s < disk.NSectorsPerTrack; s++ {
			blk, err := disk.Sector(t, s)
			if err != nil {
				return err
			}
			sectors[s] = *blk
		}
		tw := NewWriter(w)
		EncodeTrackIBMPC(cfg, tw, cylinder, head, sectors, skipIndexMark)
	}
	return nil
}

// EncodeTrackIBMPC writes one full IBM-PC track, with sectors numbered
// 1..nsectorsPerTrack and sector content taken from sectors (0-based),
// matching mfm_write_ibmpc's per-track body. skipIndexMark omits the
// physical index mark (the BK-0010 variant) but, per the Open Question
// resolution recorded in DESIGN.md, still writes the index gap before the
// first sector.
func EncodeTrackIBMPC(cfg *Config, w *Writer, cylinder, head int, sectors [][SectorSize]byte, skipIndexMark bool) {
	if !skipIndexMark {
		w.WriteGap(80, cfg.GapByte)
		w.writeIBMIndexMarker()
	}
	w.WriteGap(cfg.IndexGap, cfg.GapByte)

	nsectorsPerTrack := len(sectors)
	gap := cfg.sectorGap(nsectorsPerTrack)
	for s := 0; s < nsectorsPerTrack; s++ {
		if s > 0 {
			w.WriteGap(gap, cfg.GapByte)
		}
		w.writeIBMMarker()
		w.WriteByte(tagIDAddressMark)
		writeIdentIBMPC(w, cylinder, head, s)

		w.WriteGap(cfg.DataGap, cfg.GapByte)
		w.writeIBMMarker()
		w.WriteByte(tagDataAddressMark)
		w.WriteBytes(sectors[s][:])

		sum := CRC16CCITTByte(DataCRCSeed, tagDataAddressMark)
		sum = CRC16CCITT(sum, sectors[s][:])
		w.WriteByte(byte(sum >> 8))
		w.WriteByte(byte(sum))
	}
	w.FillTrack(cfg.GapByte)
}

func writeIdentIBMPC(w *Writer, cylinder, head, s int) {
	w.WriteByte(byte(cylinder))
	w.WriteByte(byte(head))
	w.WriteByte(byte(s + 1))
	w.WriteByte(2)

	sum := CRC16CCITTByte(HeaderCRCSeed, byte(cylinder))
	sum = CRC16CCITTByte(sum, byte(head))
	sum = CRC16CCITTByte(sum, byte(s+1))
	sum = CRC16CCITTByte(sum, 2)
	w.WriteByte(byte(sum >> 8))
	w.WriteByte(byte(sum))
}

// TrackAnalysisIBMPC reports the per-track diagnostics mfm_analyze_ibmpc
// prints: physical sector count and order, sector/data gap sizes against
// the format's standard widths, and any sectors never found.
type TrackAnalysisIBMPC struct {
	NSectorsPerTrack int
	Order            []int
	SectorGapBits    []int
	DataGapBits      []int
	Missing          []int
}

// AnalyzeTrackIBMPC reads the track of r purely for diagnostics, without storing
// decoded sectors anywhere, matching mfm_analyze_ibmpc.
func AnalyzeTrackIBMPC(cfg *Config, r *Reader) TrackAnalysisIBMPC {
	var a TrackAnalysisIBMPC
	have := make([]bool, MaxSectorsPerTrack)
	var block [SectorSize]byte
	for {
		var sg, dg int
		s, err := readSectorIBMPC(cfg, r, block[:], &sg, &dg)
		if s < 0 {
			_ = err
			break
		}
		if s >= MaxSectorsPerTrack {
			break
		}
		if s+1 > a.NSectorsPerTrack {
			a.NSectorsPerTrack = s + 1
		}
		have[s] = true
		a.Order = append(a.Order, s)
		a.SectorGapBits = append(a.SectorGapBits, sg-15*8)
		a.DataGapBits = append(a.DataGapBits, dg-15*8)
	}
	for s := 0; s < a.NSectorsPerTrack; s++ {
		if !have[s] {
			a.Missing = append(a.Missing, s)
		}
	}
	return a
}
