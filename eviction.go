package tempuscache

import "container/list"

/*
This file holds the recency-list primitives and the two eviction
helpers built on top of them. All of it assumes the caller already
holds the engine's write lock — none of these functions perform their
own synchronization.

The sentinel-bounded doubly-linked list is built on container/list:
HEAD.next is the most-recently-used element (container/list.Front),
TAIL.prev is the least-recently-used element (container/list.Back).
container/list already gives every primitive O(1), so these are thin,
named wrappers rather than a hand-rolled list — see DESIGN.md for why
that's the right call here instead of reaching for an arena/index
scheme.
*/

// linkAtHead splices a freshly created entry in as the new
// most-recently-used element.
func (c *Cache[K, V]) linkAtHead(e *entry[K, V]) *list.Element {
	return c.lru.PushFront(e)
}

// unlink detaches el from the recency list without touching the
// index.
func (c *Cache[K, V]) unlink(el *list.Element) {
	c.lru.Remove(el)
}

// moveToHead promotes el to most-recently-used.
func (c *Cache[K, V]) moveToHead(el *list.Element) {
	c.lru.MoveToFront(el)
}

// popLRU returns the current least-recently-used element, or nil if
// the list holds no entries.
func (c *Cache[K, V]) popLRU() *list.Element {
	return c.lru.Back()
}

// evictOldest drops the least-recently-used entry to make room for a
// new insertion. A no-op on an empty cache, though Put never calls it
// unless the index is already at capacity.
func (c *Cache[K, V]) evictOldest() {
	el := c.popLRU()
	if el == nil {
		return
	}
	c.removeElement(el)
	c.stats.recordEviction()
}

// removeElement removes el from both the recency list and the index.
// Used by eviction, explicit Remove, and lazy/eager TTL expiry. Clear
// does not use it: it resets the index and the list wholesale.
func (c *Cache[K, V]) removeElement(el *list.Element) {
	ent := el.Value.(*entry[K, V])
	c.unlink(el)
	delete(c.index, ent.key)
}
