package domain

import "sync"

// Catalog is the single home of every Story known to a session. Lists refer
// to stories by id, so a story shown in the global list and in a user's
// favorites is one record, not two copies.
//
// mu guards records, refs and every idList bound to the catalog.
type Catalog struct {
	mu      sync.RWMutex
	records map[string]Story
	refs    map[string]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		records: make(map[string]Story),
		refs:    make(map[string]int),
	}
}

// Lookup returns the story stored under id.
func (c *Catalog) Lookup(id string) (Story, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.records[id]
	return s, ok
}

// Len reports how many distinct stories are referenced by at least one list.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.records)
}

// retainLocked registers one more reference to s. The first record stored
// under an id wins; stories are immutable once created.
func (c *Catalog) retainLocked(s Story) {
	if _, ok := c.records[s.ID]; !ok {
		c.records[s.ID] = s
	}
	c.refs[s.ID]++
}

// releaseLocked drops one reference to id and forgets the record once
// nothing refers to it.
func (c *Catalog) releaseLocked(id string) {
	n, ok := c.refs[id]
	if !ok {
		return
	}
	if n <= 1 {
		delete(c.refs, id)
		delete(c.records, id)
		return
	}
	c.refs[id] = n - 1
}

// storiesLocked materialises ids into stories, skipping unknown ids.
func (c *Catalog) storiesLocked(ids []string) []Story {
	out := make([]Story, 0, len(ids))
	for _, id := range ids {
		if s, ok := c.records[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// idList is an ordered, duplicate-free sequence of story ids. It is not
// safe on its own: callers hold the owning catalog's mutex.
type idList struct {
	ids []string
}

func (l *idList) index(id string) int {
	for i, v := range l.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (l *idList) contains(id string) bool {
	return l.index(id) >= 0
}

// insert puts s at position i (clamped to the list bounds) and retains it in
// c. It reports false and changes nothing when the id is already present.
func (l *idList) insert(c *Catalog, i int, s Story) bool {
	if l.contains(s.ID) {
		return false
	}
	i = max(0, min(i, len(l.ids)))

	l.ids = append(l.ids, "")
	copy(l.ids[i+1:], l.ids[i:])
	l.ids[i] = s.ID
	c.retainLocked(s)

	return true
}

func (l *idList) prepend(c *Catalog, s Story) bool {
	return l.insert(c, 0, s)
}

func (l *idList) append(c *Catalog, s Story) bool {
	return l.insert(c, len(l.ids), s)
}

// remove deletes id and returns the index it had, or -1.
func (l *idList) remove(c *Catalog, id string) int {
	i := l.index(id)
	if i < 0 {
		return -1
	}

	l.ids = append(l.ids[:i], l.ids[i+1:]...)
	c.releaseLocked(id)

	return i
}

func (l *idList) snapshot() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// fill appends every record in order; repeated ids keep their first position.
func (l *idList) fill(c *Catalog, stories []Story) {
	for _, s := range stories {
		l.append(c, s)
	}
}
