package units

import "fmt"

type Bytes int64

// Abbrev renders b with a binary-unit suffix, e.g. "1.50MiB".
func (b Bytes) Abbrev() string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", int64(b))
	}
	div, exp := int64(unit), 0
	for n := int64(b) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func (b Bytes) String() string {
	return b.Abbrev()
}
