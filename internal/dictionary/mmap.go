package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/edsrzf/mmap-go"
)

var (
	errCorruptLine = errors.New("corrupt line")
	errUnsorted    = errors.New("forms are not sorted")
	errClosed      = errors.New("dictionary closed")
)

// MmapDictionary serves lookups straight from a memory-mapped file of
// "form\tlemma\ttag" lines sorted bytewise by form (LC_ALL=C sort order).
type MmapDictionary struct {
	mu     sync.RWMutex
	file   *os.File
	data   mmap.MMap
	lines  []int // start offsets of data lines
	closed bool
}

// OpenMmap maps path read-only and indexes its lines. The file must stay
// unmodified while the dictionary is open.
func OpenMmap(path string) (*MmapDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Form: path, Err: err}
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &ResourceError{Form: path, Err: err}
	}
	d := &MmapDictionary{file: f}
	if st.Size() == 0 {
		return d, nil
	}
	d.data, err = mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, &ResourceError{Form: path, Err: fmt.Errorf("mmap: %w", err)}
	}
	if err := d.index(); err != nil {
		d.Close()
		return nil, &ResourceError{Form: path, Err: err}
	}
	return d, nil
}

func (d *MmapDictionary) index() error {
	var prev []byte
	for pos := 0; pos < len(d.data); {
		end := bytes.IndexByte(d.data[pos:], '\n')
		if end < 0 {
			end = len(d.data)
		} else {
			end += pos
		}
		line := bytes.TrimRight(d.data[pos:end], "\r")
		if len(line) > 0 && line[0] != '#' {
			tab := bytes.IndexByte(line, '\t')
			if tab <= 0 {
				return fmt.Errorf("offset %d: %w", pos, errCorruptLine)
			}
			form := line[:tab]
			if prev != nil && bytes.Compare(prev, form) > 0 {
				return fmt.Errorf("offset %d: %w", pos, errUnsorted)
			}
			prev = form
			d.lines = append(d.lines, pos)
		}
		pos = end + 1
	}
	return nil
}

func (d *MmapDictionary) line(i int) []byte {
	start := d.lines[i]
	end := bytes.IndexByte(d.data[start:], '\n')
	if end < 0 {
		return bytes.TrimRight(d.data[start:], "\r")
	}
	return bytes.TrimRight(d.data[start:start+end], "\r")
}

func (d *MmapDictionary) form(i int) []byte {
	l := d.line(i)
	return l[:bytes.IndexByte(l, '\t')]
}

// Lookup binary-searches the mapped lines for form.
func (d *MmapDictionary) Lookup(form string) ([]Entry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, &ResourceError{Form: form, Err: errClosed}
	}
	probe := []byte(form)
	i := sort.Search(len(d.lines), func(i int) bool {
		return bytes.Compare(d.form(i), probe) >= 0
	})
	var out []Entry
	for ; i < len(d.lines); i++ {
		l := d.line(i)
		if !bytes.Equal(l[:bytes.IndexByte(l, '\t')], probe) {
			break
		}
		_, e, err := parseLine(string(l))
		if err != nil {
			return nil, &ResourceError{Form: form, Err: err}
		}
		out = append(out, e)
	}
	return out, nil
}

// Len returns the number of indexed lines.
func (d *MmapDictionary) Len() int { return len(d.lines) }

// Forms enumerates distinct forms in file order.
func (d *MmapDictionary) Forms(fn func(form string) bool) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return &ResourceError{Err: errClosed}
	}
	var prev []byte
	for i := range d.lines {
		f := d.form(i)
		if prev != nil && bytes.Equal(prev, f) {
			continue
		}
		prev = f
		if !fn(string(f)) {
			return nil
		}
	}
	return nil
}

// Close unmaps the file. Lookups after Close fail with ErrResourceFailure.
func (d *MmapDictionary) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	var err error
	if d.data != nil {
		err = d.data.Unmap()
		d.data = nil
	}
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}
