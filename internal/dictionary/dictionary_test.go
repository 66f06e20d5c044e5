package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sortedDict = `# form	lemma	tag
Paris	Paris	NNP
cat	cat	NN
cats	cat	NNS
cats	cat	VBZ
levr	levr	N
mañ	mañ	ADV
`

func writeDict(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMap_Lookup(t *testing.T) {
	t.Parallel()

	m := NewBuilder().
		Add("cats", Entry{Lemma: "cat", Tag: "NNS"}).
		Add("cats", Entry{Lemma: "cat", Tag: "NNS"}).
		Add("cats", Entry{Lemma: "cat", Tag: "VBZ"}).
		Build()

	es, err := m.Lookup("cats")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"cat", "NNS"}, {"cat", "VBZ"}}, es)

	es, err = m.Lookup("dogs")
	require.NoError(t, err)
	assert.Empty(t, es)
}

func TestMap_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewBuilder().Add("a", Entry{Lemma: "a", Tag: "DT"}).Build()
	es, _ := m.Lookup("a")
	es[0].Tag = "XX"

	again, _ := m.Lookup("a")
	assert.Equal(t, "DT", again[0].Tag)
}

func TestReadTabular(t *testing.T) {
	t.Parallel()

	m, err := ReadTabular(strings.NewReader(sortedDict))
	require.NoError(t, err)
	assert.Equal(t, 5, m.Len())

	_, err = ReadTabular(strings.NewReader("broken line\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceFailure))
}

func TestMmap_Lookup(t *testing.T) {
	t.Parallel()

	d, err := OpenMmap(writeDict(t, sortedDict))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	tests := []struct {
		form string
		want []Entry
	}{
		{form: "cats", want: []Entry{{"cat", "NNS"}, {"cat", "VBZ"}}},
		{form: "Paris", want: []Entry{{"Paris", "NNP"}}},
		{form: "mañ", want: []Entry{{"mañ", "ADV"}}},
		{form: "paris", want: nil},
		{form: "zzz", want: nil},
		{form: "", want: nil},
	}
	for _, tt := range tests {
		got, err := d.Lookup(tt.form)
		require.NoError(t, err, tt.form)
		assert.Equal(t, tt.want, got, tt.form)
	}
}

func TestMmap_Forms(t *testing.T) {
	t.Parallel()

	d, err := OpenMmap(writeDict(t, sortedDict))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	var forms []string
	require.NoError(t, d.Forms(func(f string) bool {
		forms = append(forms, f)
		return true
	}))
	assert.Equal(t, []string{"Paris", "cat", "cats", "levr", "mañ"}, forms)
}

func TestMmap_Empty(t *testing.T) {
	t.Parallel()

	d, err := OpenMmap(writeDict(t, ""))
	require.NoError(t, err)
	defer d.Close()

	es, err := d.Lookup("anything")
	require.NoError(t, err)
	assert.Empty(t, es)
}

func TestMmap_RejectsUnsortedAndCorrupt(t *testing.T) {
	t.Parallel()

	_, err := OpenMmap(writeDict(t, "b\tb\tN\na\ta\tN\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceFailure))
	assert.True(t, errors.Is(err, errUnsorted))

	_, err = OpenMmap(writeDict(t, "nolemma\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errCorruptLine))

	_, err = OpenMmap(filepath.Join(t.TempDir(), "missing.tsv"))
	assert.True(t, errors.Is(err, ErrResourceFailure))
}

func TestMmap_CorruptEntryIsResourceFailure(t *testing.T) {
	t.Parallel()

	d, err := OpenMmap(writeDict(t, "word\t\tN\n"))
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Lookup("word")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceFailure))

	var re *ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "word", re.Form)
}

func TestMmap_LookupAfterClose(t *testing.T) {
	t.Parallel()

	d, err := OpenMmap(writeDict(t, sortedDict))
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	_, err = d.Lookup("cat")
	assert.True(t, errors.Is(err, ErrResourceFailure))
}

func TestMmap_ConcurrentLookups(t *testing.T) {
	t.Parallel()

	d, err := OpenMmap(writeDict(t, sortedDict))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				es, err := d.Lookup("cats")
				if err != nil || len(es) != 2 {
					t.Errorf("lookup: %v %v", es, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

type countingLookup struct {
	mu    sync.Mutex
	calls int
	next  Lookup
}

func (c *countingLookup) Lookup(form string) ([]Entry, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.next.Lookup(form)
}

func TestCached(t *testing.T) {
	t.Parallel()

	base := &countingLookup{next: NewBuilder().Add("cat", Entry{"cat", "NN"}).Build()}
	c, err := NewCached(base, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		es, err := c.Lookup("cat")
		require.NoError(t, err)
		assert.Len(t, es, 1)
	}
	assert.Equal(t, 1, base.calls)

	c.Purge()
	_, _ = c.Lookup("cat")
	assert.Equal(t, 2, base.calls)
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	fail := true
	base := LookupFunc(func(form string) ([]Entry, error) {
		if fail {
			return nil, &ResourceError{Form: form, Err: errors.New("io")}
		}
		return []Entry{{"x", "X"}}, nil
	})
	c, err := NewCached(base, 4)
	require.NoError(t, err)

	_, err = c.Lookup("x")
	require.Error(t, err)

	fail = false
	es, err := c.Lookup("x")
	require.NoError(t, err)
	assert.Len(t, es, 1)
}

func TestNewCached_InvalidSize(t *testing.T) {
	t.Parallel()

	_, err := NewCached(NewMap(nil), 0)
	assert.Error(t, err)
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	a := NewBuilder().Add("cat", Entry{"cat", "NN"}).Build()
	b := NewBuilder().
		Add("cat", Entry{"cat", "NN"}).
		Add("cat", Entry{"cat", "VB"}).
		Add("dog", Entry{"dog", "NN"}).
		Build()

	o := Overlay{a, nil, b}
	es, err := o.Lookup("cat")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"cat", "NN"}, {"cat", "VB"}}, es)

	var forms []string
	require.NoError(t, o.Forms(func(f string) bool {
		forms = append(forms, f)
		return true
	}))
	assert.Equal(t, []string{"cat", "cat", "dog"}, forms)
}

func TestOverlay_ErrorAborts(t *testing.T) {
	t.Parallel()

	broken := LookupFunc(func(form string) ([]Entry, error) {
		return nil, &ResourceError{Form: form, Err: errors.New("disk gone")}
	})
	o := Overlay{NewBuilder().Add("a", Entry{"a", "X"}).Build(), broken}

	_, err := o.Lookup("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceFailure))
}
