package pin

// Table is a fixed, ordered name catalog. Board tables map application-facing
// names to descriptors; cpu tables map silicon-level names. Tables are built
// once at start-up and read-only afterwards, so lookups need no locking.
type Table struct {
	names  []string
	byName map[string]*Descriptor
}

func NewTable() *Table {
	return &Table{byName: make(map[string]*Descriptor)}
}

// Add registers a name. It panics on duplicates to catch board-definition
// mistakes at start-up. Returns the table for chaining in board files.
func (t *Table) Add(name string, d *Descriptor) *Table {
	if name == "" || d == nil {
		panic("pin: empty table entry")
	}
	if _, exists := t.byName[name]; exists {
		panic("pin: duplicate table entry " + name)
	}
	t.names = append(t.names, name)
	t.byName[name] = d
	return t
}

func (t *Table) Find(name string) (*Descriptor, bool) {
	d, ok := t.byName[name]
	return d, ok
}

func (t *Table) Len() int { return len(t.names) }

// Names returns the entry names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}
