package style

// Entry is one key of a Tree. Exactly one of Value or Tree is meaningful:
// Tree is non-nil for nested blocks.
type Entry struct {
	Key   string
	Value string
	Tree  *Tree
}

// IsTree reports whether the entry holds a nested block.
func (e Entry) IsTree() bool {
	return e.Tree != nil
}

// Tree is an ordered key/value mapping produced by parsing a rule body.
// Insertion order is preserved and drives CSS emission order.
type Tree struct {
	entries []Entry
	index   map[string]int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{index: make(map[string]int)}
}

// Len returns the number of keys at this level.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns the entries in insertion order. Callers must not modify
// the returned slice.
func (t *Tree) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Keys returns the keys in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, t.Len())
	for _, e := range t.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Has reports whether key exists at this level.
func (t *Tree) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[key]
	return ok
}

// Get returns the literal value stored under key. Nested blocks report false.
func (t *Tree) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[key]
	if !ok || t.entries[i].Tree != nil {
		return "", false
	}
	return t.entries[i].Value, true
}

// Child returns the nested block stored under key, or nil.
func (t *Tree) Child(key string) *Tree {
	if t == nil {
		return nil
	}
	i, ok := t.index[key]
	if !ok {
		return nil
	}
	return t.entries[i].Tree
}

// Set stores a literal value. An existing key keeps its position.
func (t *Tree) Set(key, value string) {
	t.put(Entry{Key: key, Value: value})
}

// SetTree stores a nested block. An existing key keeps its position.
func (t *Tree) SetTree(key string, child *Tree) {
	t.put(Entry{Key: key, Tree: child})
}

func (t *Tree) put(e Entry) {
	if i, ok := t.index[e.Key]; ok {
		t.entries[i] = e
		return
	}
	t.index[e.Key] = len(t.entries)
	t.entries = append(t.entries, e)
}

// Clone returns a deep copy.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{
		entries: make([]Entry, len(t.entries)),
		index:   make(map[string]int, len(t.index)),
	}
	for i, e := range t.entries {
		if e.Tree != nil {
			e.Tree = e.Tree.Clone()
		}
		out.entries[i] = e
		out.index[e.Key] = i
	}
	return out
}

// MergeMissing copies every key of src that t does not already define.
// When both sides hold a nested block under the same key the merge recurses.
// Values already present in t always win, and src is never aliased.
func (t *Tree) MergeMissing(src *Tree) {
	for _, e := range src.Entries() {
		i, ok := t.index[e.Key]
		if !ok {
			if e.Tree != nil {
				e.Tree = e.Tree.Clone()
			}
			t.put(e)
			continue
		}
		if dst := t.entries[i].Tree; dst != nil && e.Tree != nil {
			dst.MergeMissing(e.Tree)
		}
	}
}
