// Package clause splits contract text into heading-scoped chunks and
// annotates each chunk with a category and a risk judgement.
package clause

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxChars bounds a chunk body when no heading arrives in time.
const DefaultMaxChars = 1600

// Chunk is one heading-plus-body slice of a document.
type Chunk struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

var headingLine = regexp.MustCompile(`^\s*(\d+(\.\d+)*\s+)?([A-Z][A-Za-z \-/]{3,40}):?\s*$`)

// Split chunks text on heading lines, falling back to a length cut of
// maxChars when a section runs long. maxChars <= 0 uses
// DefaultMaxChars. Headings become chunk titles; length-cut chunks get
// a synthetic "Chunk N" title.
func Split(text string, maxChars int) []Chunk {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var (
		chunks  []Chunk
		heading = "Chunk"
		buf     []string
		bufLen  int
		n       int
	)
	flush := func(nextHeading string) {
		body := strings.TrimSpace(strings.Join(buf, "\n"))
		if body != "" {
			chunks = append(chunks, Chunk{Heading: heading, Body: body})
		}
		buf, bufLen = nil, 0
		n++
		heading = nextHeading
	}

	for _, line := range strings.Split(text, "\n") {
		if m := headingLine.FindString(line); m != "" && len(buf) > 0 {
			flush(strings.TrimSpace(strings.Trim(strings.TrimSpace(m), ": ")))
			continue
		}
		buf = append(buf, line)
		bufLen += len(line)
		if bufLen > maxChars {
			flush(fmt.Sprintf("Chunk %d", n+1))
		}
	}
	if len(buf) > 0 {
		if body := strings.TrimSpace(strings.Join(buf, "\n")); body != "" {
			chunks = append(chunks, Chunk{Heading: heading, Body: body})
		}
	}
	return chunks
}
