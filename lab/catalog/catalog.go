// Package catalog holds the immutable, ordered list of allocations an operator
// can create.
//
// A Catalog is built once from an explicit Table and never changes afterwards.
// Indices are 1-based to match what the operator sees.
package catalog

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/joshuapare/memlab/lab/handle"
	"github.com/joshuapare/memlab/lab/stack"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

const stackMax = stack.MaxSize

var (
	// ErrNotFound is returned by Get for indices outside [1, Len()].
	ErrNotFound = errors.New("catalog: no such entry")

	// ErrInvalidTable is returned by New for tables that fail validation.
	ErrInvalidTable = errors.New("catalog: invalid table")
)

// Descriptor describes one catalog entry and knows how to construct it.
type Descriptor struct {
	Name     string
	Strategy handle.Strategy
	Size     int

	opts handle.Options
}

// Construct provisions a new allocation for this descriptor.
func (d Descriptor) Construct() (*handle.Handle, error) {
	return handle.New(d.Name, d.Strategy, d.Size, d.opts)
}

// Listing is one row of List.
type Listing struct {
	Index int
	Name  string
}

// Catalog is the immutable registry of descriptors.
type Catalog struct {
	descriptors []Descriptor
	byName      *swiss.Map[string, int]
	sentinel    byte
	tempDir     string
}

// New validates t and builds a catalog from it. Display names must be unique
// ignoring case.
func New(t Table) (*Catalog, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	opts := handle.Options{Sentinel: t.Sentinel, TempDir: t.TempDir}
	if opts.Sentinel == 0 {
		opts.Sentinel = handle.DefaultSentinel
	}

	c := &Catalog{
		descriptors: make([]Descriptor, 0, len(t.Entries)),
		byName:      swiss.NewMap[string, int](uint32(len(t.Entries))),
		sentinel:    opts.Sentinel,
		tempDir:     opts.TempDir,
	}
	for _, e := range t.Entries {
		name := e.DisplayName()
		key := nameKey(name)
		if prev, ok := c.byName.Get(key); ok {
			return nil, errors.Wrapf(ErrInvalidTable, "entry %d: name %q duplicates entry %d",
				len(c.descriptors)+1, name, prev)
		}
		c.descriptors = append(c.descriptors, Descriptor{
			Name:     name,
			Strategy: e.Strategy,
			Size:     e.Size.Bytes(),
			opts:     opts,
		})
		c.byName.Put(key, len(c.descriptors))
	}
	return c, nil
}

// Default returns the catalog built from DefaultTable.
func Default() *Catalog {
	c, err := New(DefaultTable())
	if err != nil {
		panic(err)
	}
	return c
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.descriptors) }

// Sentinel returns the fill byte shared by every entry.
func (c *Catalog) Sentinel() byte { return c.sentinel }

// TempDir returns the directory used for file-backed mappings ("" for the OS
// default).
func (c *Catalog) TempDir() string { return c.tempDir }

// List returns every entry with its 1-based index, in catalog order.
func (c *Catalog) List() []Listing {
	out := make([]Listing, len(c.descriptors))
	for i, d := range c.descriptors {
		out[i] = Listing{Index: i + 1, Name: d.Name}
	}
	return out
}

// Get returns the descriptor at the 1-based index.
func (c *Catalog) Get(index int) (Descriptor, error) {
	if index < 1 || index > len(c.descriptors) {
		return Descriptor{}, errors.Wrapf(ErrNotFound, "index %d not in [1, %d]", index, len(c.descriptors))
	}
	return c.descriptors[index-1], nil
}

// Lookup finds an entry by display name, ignoring case and surrounding space,
// and returns its 1-based index.
func (c *Catalog) Lookup(name string) (int, bool) {
	return c.byName.Get(nameKey(name))
}

// BuildJSON streams the catalog as a JSON object.
func (c *Catalog) BuildJSON(w *jwriter.Writer) {
	obj := w.Object()
	defer obj.End()

	obj.Name("sentinel").Int(int(c.sentinel))
	if c.tempDir != "" {
		obj.Name("temp_dir").String(c.tempDir)
	}

	arr := obj.Name("entries").Array()
	defer arr.End()
	for i, d := range c.descriptors {
		entry := arr.Object()
		entry.Name("index").Int(i + 1)
		entry.Name("name").String(d.Name)
		entry.Name("strategy").String(d.Strategy.String())
		entry.Name("kind").String(d.Strategy.Kind().String())
		entry.Name("size").Int(d.Size)
		entry.End()
	}
}
