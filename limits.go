package gopage

const (
	// SizeUnbounded requests a single page holding the whole result set.
	SizeUnbounded = 0
	MaxSize       = 100
	DefaultSize   = 10
)

// IsNormalizedSizeMax clamps a requested page size into [0, maxSize] and
// reports whether the input was already within bounds. Negative sizes fall
// back to DefaultSize; SizeUnbounded passes through.
func IsNormalizedSizeMax(size int, maxSize int) (int, bool) {
	if size < 0 {
		return DefaultSize, false
	} else if size > maxSize {
		return maxSize, false
	}

	return size, true
}

func NormalizeSizeMax(size int, maxSize int) int {
	ret, _ := IsNormalizedSizeMax(size, maxSize)
	return ret
}

func NormalizeSize(size int) int {
	return NormalizeSizeMax(size, MaxSize)
}
