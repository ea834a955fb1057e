package rht03

// Pure frame decoding. Everything here is testable without a line.

// classifyPulse maps a pulse's iteration count to a bit value: strictly
// greater than the threshold is a long pulse (1), anything up to and
// including the threshold is a short pulse (0).
func classifyPulse(count, threshold uint8) uint8 {
	if count > threshold {
		return 1
	}
	return 0
}

// assembleFrame folds 40 data bits into 5 byte buckets. Bit i lands in
// bucket i/8 and shifts in from the right, so the first bit of each bucket
// ends up most significant. The caller guarantees exactly DataBits bits.
func assembleFrame(bits *[DataBits]uint8) [Buckets]uint8 {
	var buckets [Buckets]uint8
	for i, b := range bits {
		buckets[i/8] = buckets[i/8]<<1 | b
	}
	return buckets
}

// checksumOK reports whether the four data bytes sum to the checksum byte.
// The sum wraps modulo 256; uint8 addition overflowing is the point.
func checksumOK(b [Buckets]uint8) bool {
	return b[0]+b[1]+b[2]+b[3] == b[4]
}
