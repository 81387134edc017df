// Package mapfile maps read-only data files into memory and walks their lines.
package mapfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// EachLine memory-maps path and calls fn for every line, numbered from 1, without the line
// terminator. The slice passed to fn is only valid during the call.
func EachLine(path string, fn func(lineNo int, line []byte)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Size() == 0 {
		return nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()

	Lines(m, fn)
	return nil
}

// Lines calls fn for every line of data.
func Lines(data []byte, fn func(lineNo int, line []byte)) {
	lineNo := 0
	for len(data) > 0 {
		lineNo++
		i := bytes.IndexByte(data, '\n')
		var line []byte
		if i < 0 {
			line, data = data, nil
		} else {
			line, data = data[:i], data[i+1:]
		}
		fn(lineNo, bytes.TrimRight(line, "\r"))
	}
}
