package mfm

import "io"

// ScanAmiga advances reader bit by bit looking for an Amiga sync mark
// (00-A1-A1-Fx), with history primed to 0 (unlike ScanIBMPC's
// 0x13713713 — the all-zero preamble Amiga tracks start with makes the
// IBM-PC priming unnecessary here) and the same resync-on-all-ones rule.
// Returns the low tag nibble/byte packed into the matched history and the
// number of bits consumed, matching mfm_scan_amiga.
func ScanAmiga(r *Reader) (tag int, nbitsRead int, err error) {
	var history uint32
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
		if history&0xfffffff0 == 0x00a1a1f0 {
			return int(history & 0xff), nbitsRead, nil
		}
	}
}

// readLongAmiga reads one shuffled 32-bit word and XORs its odd/even halves
// into sum, matching read_long.
func readLongAmiga(r *Reader, sum *uint32) (uint32, error) {
	oh, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	ol, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	eh, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	el, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	odd := uint16(oh)<<8 | uint16(ol)
	even := uint16(eh)<<8 | uint16(el)
	*sum ^= uint32(odd) ^ uint32(even)
	return Unshuffle(odd, even), nil
}

// readDataAmiga reads a shuffled 512-byte data block (odd halves of all 128
// longs, then even halves of all 128 longs) into data, returning the XOR
// checksum of every odd/even pair, matching read_data.
func readDataAmiga(r *Reader, data []byte) (uint32, error) {
	const nlongs = SectorSize / 4
	odd := make([]uint16, nlongs)
	even := make([]uint16, nlongs)
	for i := 0; i < nlongs; i++ {
		hi, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		lo, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		odd[i] = uint16(hi)<<8 | uint16(lo)
	}
	for i := 0; i < nlongs; i++ {
		hi, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		lo, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		even[i] = uint16(hi)<<8 | uint16(lo)
	}
	var sum uint32
	for i := 0; i < nlongs; i++ {
		ldata := Unshuffle(odd[i], even[i])
		sum ^= uint32(odd[i]) ^ uint32(even[i])
		data[4*i] = byte(ldata >> 24)
		data[4*i+1] = byte(ldata >> 16)
		data[4*i+2] = byte(ldata >> 8)
		data[4*i+3] = byte(ldata)
	}
	return sum, nil
}

// ReadSectorAmiga reads the next complete sector from an Amiga track. Unlike
// the IBM-PC engine, a header checksum mismatch here discards the sector
// immediately (-1) rather than continuing to scan, matching
// mfm_read_sector_amiga exactly; a track-number mismatch is only a warning,
// and a data checksum mismatch is a warning but the sector is still
// returned.
func ReadSectorAmiga(cfg *Config, r *Reader, data []byte) (sector int, err error) {
	return readSectorAmiga(cfg, r, data, nil)
}

func readSectorAmiga(cfg *Config, r *Reader, data []byte, sectorGap *int) (int, error) {
	if sectorGap != nil {
		*sectorGap = 0
	}
	for {
		tag, gap, err := ScanAmiga(r)
		if sectorGap != nil {
			*sectorGap += gap
		}
		if tag < 0 {
			return -1, err
		}
		b, err := r.ReadByte()
		if err != nil {
			return -1, err
		}
		odd := uint16(tag)<<8 | uint16(b)
		eh, err := r.ReadByte()
		if err != nil {
			return -1, err
		}
		el, err := r.ReadByte()
		if err != nil {
			return -1, err
		}
		even := uint16(eh)<<8 | uint16(el)
		info := Unshuffle(odd, even) & 0xffffff
		track := int(info >> 16)
		sector := int(info>>8) & 0xff
		myHeaderSum := uint32(odd) ^ uint32(even)

		var label [4]uint32
		for i := range label {
			label[i], err = readLongAmiga(r, &myHeaderSum)
			if err != nil {
				return -1, err
			}
		}
		if cfg.Verbose > 0 {
			cfg.logf("Track %d, sector %d: label %08x:%08x:%08x:%08x\n",
				track, sector, label[0], label[1], label[2], label[3])
		}

		hb := make([]byte, 4)
		for i := range hb {
			hb[i], err = r.ReadByte()
			if err != nil {
				return -1, err
			}
		}
		headerSum := uint32(hb[0])<<24 | uint32(hb[1])<<16 | uint32(hb[2])<<8 | uint32(hb[3])
		if myHeaderSum != headerSum {
			cfg.logf("track %d sector %d: header sum %08x, expected %08x\n",
				track, sector, myHeaderSum, headerSum)
			return -1, nil
		}
		if track != r.Track() {
			cfg.logf("track %d, sector %d: incorrect track number, expected %d\n",
				track, sector, r.Track())
		}

		db := make([]byte, 4)
		for i := range db {
			db[i], err = r.ReadByte()
			if err != nil {
				return -1, err
			}
		}
		dataSum := uint32(db[0])<<24 | uint32(db[1])<<16 | uint32(db[2])<<8 | uint32(db[3])

		myDataSum, err := readDataAmiga(r, data)
		if err != nil {
			return -1, err
		}
		if myDataSum != dataSum {
			cfg.logf("track %d sector %d: data sum %08x, expected %08x\n",
				track, sector, myDataSum, dataSum)
		}
		return sector, nil
	}
}

// ReadTrackAmiga reads every sector it can find on one Amiga track into
// disk, matching mfm_read_amiga's per-track body.
func ReadTrackAmiga(cfg *Config, stream io.ReadSeeker, disk *Disk, t int) error {
	r, err := Seek(stream, t)
	if err != nil {
		return err
	}
	haveSector := make([]bool, MaxSectorsPerTrack)
	var block [SectorSize]byte
	for {
		s, err := ReadSectorAmiga(cfg, r, block[:])
		if s < 0 {
			if err == nil {
				// Header checksum mismatch: only this sector is discarded.
				continue
			}
			if err == ErrEndOfTrack {
				break
			}
			return err
		}
		if s >= disk.NSectorsPerTrack {
			cfg.logf("track %d: too large sector number %d\n", t, s)
			continue
		}
		haveSector[s] = true
		dst, derr := disk.Sector(t, s)
		if derr != nil {
			return derr
		}
		copy(dst[:], block[:])
	}
	for s := 0; s < disk.NSectorsPerTrack; s++ {
		if !haveSector[s] {
			cfg.logf("track %d: no sector %d\n", t, s)
		}
	}
	return nil
}

// ReadDiskAmiga reads ntracks tracks of an Amiga MFM stream into a new
// Disk, fixed at 11 sectors/track, matching mfm_read_amiga.
func ReadDiskAmiga(cfg *Config, stream io.ReadSeeker, ntracks int) (*Disk, error) {
	disk, err := NewDisk(ntracks, 11)
	if err != nil {
		return nil, err
	}
	for t := 0; t < ntracks; t++ {
		if err := ReadTrackAmiga(cfg, stream, disk, t); err != nil {
			return nil, err
		}
	}
	return disk, nil
}

// writeIdentAmiga writes the shuffled info long (0xFF<<24 |
// track<<16 | sector<<8 | (11-sector)), 16 zero label bytes, and the XOR
// checksum of the info long's shuffled halves, matching write_ident. The
// label is always zero here — a non-zero label would need to flow through
// Shuffle like the info long does, but this format never populates one.
func writeIdentAmiga(w *Writer, t, s int) {
	info := uint32(0xff)<<24 | uint32(t)<<16 | uint32(s)<<8 | uint32(11-s)
	odd, even := Shuffle(info)
	sum := uint32(odd) ^ uint32(even)

	w.WriteByte(byte(odd >> 8))
	w.WriteByte(byte(odd))
	w.WriteByte(byte(even >> 8))
	w.WriteByte(byte(even))

	w.WriteGap(16, 0)

	w.WriteByte(byte(sum >> 24))
	w.WriteByte(byte(sum >> 16))
	w.WriteByte(byte(sum >> 8))
	w.WriteByte(byte(sum))
}

// writeSectorAmiga shuffles data into odd/even halves of 128 longs,
// accumulates the XOR checksum, and writes checksum-then-odd-then-even,
// matching write_sector — the counterpart the retrieved teacher snapshot
// never had (see DESIGN.md).
func writeSectorAmiga(w *Writer, data *[SectorSize]byte) {
	const nlongs = SectorSize / 4
	var odd, even [nlongs]uint16
	var sum uint32
	for i := 0; i < nlongs; i++ {
		ldata := uint32(data[4*i])<<24 | uint32(data[4*i+1])<<16 | uint32(data[4*i+2])<<8 | uint32(data[4*i+3])
		odd[i], even[i] = Shuffle(ldata)
		sum ^= uint32(odd[i]) ^ uint32(even[i])
	}

	w.WriteByte(byte(sum >> 24))
	w.WriteByte(byte(sum >> 16))
	w.WriteByte(byte(sum >> 8))
	w.WriteByte(byte(sum))

	for i := 0; i < nlongs; i++ {
		w.WriteByte(byte(odd[i] >> 8))
		w.WriteByte(byte(odd[i]))
	}
	for i := 0; i < nlongs; i++ {
		w.WriteByte(byte(even[i] >> 8))
		w.WriteByte(byte(even[i]))
	}
}

// EncodeTrackAmiga writes one full Amiga track: a 150-byte zero preamble,
// then for each sector a marker, identifier and shuffled data block, then
// zero-fills the remainder of the track window, matching mfm_write_amiga.
func EncodeTrackAmiga(w *Writer, t int, sectors []*[SectorSize]byte) {
	w.WriteGap(150, 0)
	for s, block := range sectors {
		w.writeAmigaMarker()
		writeIdentAmiga(w, t, s)
		writeSectorAmiga(w, block)
	}
	w.FillTrack(0)
}

// WriteDiskAmiga writes disk out as an Amiga MFM stream, matching
// mfm_write_amiga.
func WriteDiskAmiga(cfg *Config, w io.Writer, disk *Disk) error {
	if cfg.Verbose > 0 {
		cfg.logf("Creating %d tracks, %d sectors per track\n", disk.NTracks, disk.NSectorsPerTrack)
	}
	for t := 0; t < disk.NTracks; t++ {
		blocks := make([]*[SectorSize]byte, disk.NSectorsPerTrack)
		for s := 0; s < disk.NSectorsPerTrack; s++ {
			blk, err := disk.Sector(t, s)
			if err != nil {
				return err
			}
			blocks[s] = blk
		}
		tw := NewWriter(w)
		EncodeTrackAmiga(tw, t, blocks)
	}
	return nil
}

// TrackAnalysisAmiga reports the per-track diagnostics mfm_analyze_amiga
// prints: physical sector count and order, and sector gap sizes (Amiga
// tracks have no standard gap width to compare against, hence the
// always-zero "std" figure in the original).
type TrackAnalysisAmiga struct {
	NSectorsPerTrack int
	Order            []int
	SectorGapBits    []int
	Missing          []int
}

// AnalyzeTrackAmiga reads the track of r purely for diagnostics, matching
// mfm_analyze_amiga.
func AnalyzeTrackAmiga(cfg *Config, r *Reader) TrackAnalysisAmiga {
	var a TrackAnalysisAmiga
	have := make([]bool, MaxSectorsPerTrack)
	var block [SectorSize]byte
	for {
		var gap int
		s, err := readSectorAmiga(cfg, r, block[:], &gap)
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
		a.SectorGapBits = append(a.SectorGapBits, gap-5*8)
	}
	for s := 0; s < a.NSectorsPerTrack; s++ {
		if !have[s] {
			a.Missing = append(a.Missing, s)
		}
	}
	return a
}
