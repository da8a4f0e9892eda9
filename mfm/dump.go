package mfm

import "io"

// Dump writes a half-bit-level listing of ntracks tracks of stream to
// cfg.Diag, matching mfm_dump. At cfg.Verbose > 0 every half-bit is printed
// as a raw 0/1 digit. Otherwise each half-bit pair is printed as one
// character: a pair whose half-bits differ, or a clear pair right after a
// set half-bit, is printed as its data bit ('0' or '1'); a clear pair after
// a clear half-bit (a missing clock, as in a sync mark) is printed as '_',
// and a pair with both half-bits set as '#', so sync marks stand out.
func Dump(cfg *Config, stream io.ReadSeeker, ntracks int) error {
	for t := 0; t < ntracks; t++ {
		r, err := Seek(stream, t)
		if err != nil {
			return err
		}
		cylinder, head := CylinderHead(t)
		cfg.logf("Track %d/%d:\n", cylinder, head)

		var a, b, lastB int
		for i := 0; ; i++ {
			var bit int
			var herr error
			if cfg.Verbose > 0 {
				bit, herr = r.ReadHalfBit()
				b = bit
			} else {
				lastB = b
				a, herr = r.ReadHalfBit()
				if herr == nil {
					b, herr = r.ReadHalfBit()
				}
				if a == 0 && b == 0 && lastB != 0 {
					a = 1
				}
			}
			if herr != nil {
				break
			}
			if cfg.Verbose > 0 || a != b {
				cfg.logf("%d", b)
			} else if b != 0 {
				cfg.logf("#")
			} else {
				cfg.logf("_")
			}
			if i&63 == 63 {
				cfg.logf("\n")
			}
		}
		cfg.logf("\n")
	}
	return nil
}
