package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/five82/gridview/internal/grid"
)

const maxLineSize = 1024 * 1024

// DecodeJSONLines decodes one object per line, skipping blank lines. When
// maxRows is positive only the last maxRows records are kept, so a growing
// event log can be followed without holding all of it.
func DecodeJSONLines(r io.Reader, maxRows int) ([]grid.Record, error) {
	var ring []grid.Record
	if maxRows > 0 {
		ring = make([]grid.Record, maxRows)
	}
	var out []grid.Record
	count := 0
	idx := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(text))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse jsonl dataset line %d: %w", line, err)
		}

		if maxRows <= 0 {
			out = append(out, grid.Record(raw))
			continue
		}
		ring[idx] = grid.Record(raw)
		idx = (idx + 1) % maxRows
		if count < maxRows {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl dataset: %w", err)
	}
	if maxRows <= 0 {
		return out, nil
	}

	out = make([]grid.Record, count)
	if count == maxRows {
		for i := range count {
			out[i] = ring[(idx+i)%maxRows]
		}
	} else {
		copy(out, ring[:count])
	}
	return out, nil
}
