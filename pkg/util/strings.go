package util

import "strings"

var filenameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"\x00", "",
)

// SafeFilename strips characters that cannot appear in a file name on common filesystems
func SafeFilename(name string) string {
	return strings.TrimSpace(filenameReplacer.Replace(name))
}

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}
