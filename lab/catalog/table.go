package catalog

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/internal/sizefmt"
	"github.com/joshuapare/memlab/lab/handle"
	"gopkg.in/yaml.v3"
)

// DefaultSizes are the sizes every strategy is offered at by DefaultTable.
var DefaultSizes = []sizefmt.Size{1 * sizefmt.MiB, 10 * sizefmt.MiB, 100 * sizefmt.MiB}

// Entry configures one catalog row.
type Entry struct {
	Strategy handle.Strategy `yaml:"strategy"`
	Size     sizefmt.Size    `yaml:"size"`
	Name     string          `yaml:"name,omitempty"` // derived from Strategy and Size when empty
}

// DisplayName returns Name, or "<strategy label> <size>" when Name is empty.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Strategy.Label() + " " + e.Size.String()
}

// Table is the explicit configuration a Catalog is built from.
type Table struct {
	Sentinel byte    `yaml:"sentinel,omitempty"` // handle.DefaultSentinel when zero
	TempDir  string  `yaml:"temp_dir,omitempty"`
	Entries  []Entry `yaml:"entries"`
}

// DefaultTable returns every strategy at every DefaultSizes size, grouped by
// strategy.
func DefaultTable() Table {
	strategies := handle.Strategies()
	t := Table{
		Sentinel: handle.DefaultSentinel,
		Entries:  make([]Entry, 0, len(strategies)*len(DefaultSizes)),
	}
	for _, s := range strategies {
		for _, size := range DefaultSizes {
			t.Entries = append(t.Entries, Entry{Strategy: s, Size: size})
		}
	}
	return t
}

// ParseTable decodes a YAML table.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, errors.Wrap(err, "catalog: parse table")
	}
	return t, nil
}

// LoadTable reads a YAML table from path.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "catalog: read table %s", path)
	}
	t, err := ParseTable(data)
	if err != nil {
		return Table{}, errors.Wrapf(err, "%s", path)
	}
	return t, nil
}

// Validate checks every entry can be constructed in principle.
func (t Table) Validate() error {
	if len(t.Entries) == 0 {
		return errors.Wrap(ErrInvalidTable, "no entries")
	}
	for i, e := range t.Entries {
		row := i + 1
		switch {
		case !e.Strategy.Valid():
			return errors.Wrapf(ErrInvalidTable, "entry %d: unknown strategy", row)
		case e.Size <= 0:
			return errors.Wrapf(ErrInvalidTable, "entry %d: size must be positive", row)
		case e.Strategy == handle.StackResident && e.Size.Bytes() > stackMax:
			return errors.Wrapf(ErrInvalidTable, "entry %d: stack size %s exceeds %s",
				row, e.Size, sizefmt.Size(stackMax))
		}
	}
	return nil
}
