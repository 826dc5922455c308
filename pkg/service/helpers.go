package service

import "os"

// pluralize returns "s" for counts other than one
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
