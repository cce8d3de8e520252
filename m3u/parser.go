package m3u

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
)

const (
	headerTag = "#EXTM3U"
	extInfTag = "#EXTINF"
	utf8BOM   = "\ufeff"
)

var (
	// durationRegex matches the directive prefix up to the end of the duration.
	durationRegex = regexp.MustCompile(`^#EXTINF:[-+]?\d+`)
	// groupTitleRegex extracts the group-title attribute value.
	groupTitleRegex = regexp.MustCompile(`group-title="([^"]*)"`)
)

// ParseFile reads and parses the playlist at path.
func ParseFile(path string) ([]ChannelRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening playlist: %w", err)
	}
	defer file.Close()

	records, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return records, nil
}

// ParseString parses playlist content held in memory.
func ParseString(content string) ([]ChannelRecord, error) {
	return Parse(strings.NewReader(content))
}

// Parse turns playlist text into channel records in file order. Malformed
// directives are recovered where possible and directives without a URI are
// dropped; only read errors are returned.
func Parse(r io.Reader) ([]ChannelRecord, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var records []ChannelRecord
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, extInfTag) {
			continue
		}

		// The URI is the next line that is not a directive or comment.
		j := i + 1
		for j < len(lines) && strings.HasPrefix(lines[j], "#") {
			j++
		}
		if j >= len(lines) {
			break
		}

		group, name := parseExtInf(line)
		if name != "" {
			records = append(records, ChannelRecord{
				Group: group,
				Name:  name,
				URI:   lines[j],
			})
		}
		i = j
	}

	return records, nil
}

func readLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)

	var lines []string
	first := true
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading content: %w", err)
		}
		if first {
			line = strings.TrimPrefix(line, utf8BOM)
			first = false
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
		if err != nil {
			return lines, nil
		}
	}
}

// parseExtInf extracts the group-title and display name of an EXTINF line.
// Lines that do not follow `#EXTINF:<duration> <attrs>,<name>` fall back to
// the text after the first comma.
func parseExtInf(line string) (group, name string) {
	if loc := durationRegex.FindStringIndex(line); loc != nil {
		rest := line[loc[1]:]
		if rest != "" && (rest[0] == ',' || unicode.IsSpace(rune(rest[0]))) {
			if idx := attributeEnd(rest); idx >= 0 {
				name = strings.TrimSpace(rest[idx+1:])
				if name != "" {
					if match := groupTitleRegex.FindStringSubmatch(rest[:idx]); match != nil {
						group = match[1]
					}
					return group, name
				}
			}
		}
	}

	if _, after, found := strings.Cut(line, ","); found {
		return "", strings.TrimSpace(after)
	}
	return "", line
}

// attributeEnd returns the index of the first comma outside a quoted
// attribute value, or -1.
func attributeEnd(s string) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				return i
			}
		}
	}
	return -1
}
