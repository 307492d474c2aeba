package style

import "fmt"

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// FormatSize renders a byte count in human-scaled units (B/KB/MB/GB)
func FormatSize(sizeBytes int64) string {
	switch {
	case sizeBytes < kib:
		return fmt.Sprintf("%d B", sizeBytes)
	case sizeBytes < mib:
		return fmt.Sprintf("%.2f KB", float64(sizeBytes)/kib)
	case sizeBytes < gib:
		return fmt.Sprintf("%.2f MB", float64(sizeBytes)/mib)
	default:
		return fmt.Sprintf("%.2f GB", float64(sizeBytes)/gib)
	}
}

// FormatSizeBoth renders a byte count as both human-scaled and raw,
// e.g. "1.50 MB (1,572,864 bytes)"
func FormatSizeBoth(sizeBytes int64) string {
	return fmt.Sprintf("%s (%s bytes)", FormatSize(sizeBytes), groupDigits(sizeBytes))
}

// groupDigits inserts thousands separators into a non-negative count
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
