package mfm

import "io"

// Format identifies which sector layout an MFM stream uses.
type Format int

const (
	// FormatUnknown means DetectFormat could not find either sync pattern
	// before running out of track 0.
	FormatUnknown Format = iota
	FormatIBMPC
	FormatAmiga
)

func (f Format) String() string {
	switch f {
	case FormatIBMPC:
		return "IBM PC"
	case FormatAmiga:
		return "Amiga"
	default:
		return "unknown"
	}
}

// DetectFormat scans track 0 of stream for either an IBM-PC sync
// (00-A1-A1-A1 or 00-C2-C2-C2) or an Amiga sync (00-A1-A1-Fx), matching
// mfm_detect_amiga. It primes history the same way ScanIBMPC does, since
// an Amiga mark can appear within the first 32 bits read and the IBM-PC
// priming constant is specifically chosen to never spuriously match that
// early.
func DetectFormat(stream io.ReadSeeker) (Format, error) {
	r, err := Seek(stream, 0)
	if err != nil {
		return FormatUnknown, err
	}
	history := uint32(0x13713713)
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return FormatUnknown, err
		}
		history = history<<1 | uint32(bit)

		if history == 0xffffffff {
			r.ReadHalfBit()
			history = 0
			continue
		}
		if history == 0x00a1a1a1 || history == 0x00c2c2c2 {
			return FormatIBMPC, nil
		}
		if history&0xfffffff0 == 0x00a1a1f0 {
			return FormatAmiga, nil
		}
	}
}
