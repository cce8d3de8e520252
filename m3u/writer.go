package m3u

import (
	"bufio"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

// Write serializes entries as an extended M3U playlist. Every entry carries
// its label as group-title and the fixed duration -1.
func Write(w io.Writer, entries []Entry) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(headerTag + "\n")
	for _, entry := range entries {
		_, _ = buf.WriteString(formatEntry(entry))
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("error writing playlist: %w", err)
	}
	return nil
}

func formatEntry(entry Entry) string {
	return fmt.Sprintf("#EXTINF:-1 group-title=\"%s\",%s\n%s\n", entry.Label, entry.Name, entry.URI)
}

// WriteFile writes entries to path. The destination either receives the
// complete playlist or is left as it was.
func WriteFile(path string, entries []Entry) error {
	return WriteFileAtomic(path, func(w *bufio.Writer) error {
		return Write(w, entries)
	})
}
