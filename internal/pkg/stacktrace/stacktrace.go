package stacktrace

import "strings"

// InternalPaths filters a raw goroutine stack down to frames belonging to
// this repository's internal packages, trimmed to "internal/...go:line".
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")

	paths := make([]string, 0, 8)
	for _, line := range lines {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		end := strings.IndexByte(line[idx:], ' ')
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		frame := line[:end]
		if at := strings.Index(frame, "/internal/"); at != -1 {
			paths = append(paths, frame[at+1:])
		}
	}

	return paths
}
