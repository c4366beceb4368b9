package codec

// noneCompress and noneDecompress are a memcpy saturating at the smaller
// of source and destination length.
func noneCompress(src, dst []byte, _ int) (int, int) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	copy(dst[:n], src[:n])
	return n, noneOK
}

func noneDecompress(src, dst []byte) (int, int) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	copy(dst[:n], src[:n])
	return n, noneOK
}

func noneMaxCompressedSize(n int) int { return n }

func noneSuggestedDecompressedSize(n int) int { return n }

const (
	noneOK                   = 0
	noneBufferTooSmallStatus = -1
)
