package core

// DefaultHistorySize is the number of entries retained when no explicit
// capacity is configured.
const DefaultHistorySize = 10

// HistoryEntry is one recorded command. IDs start at 1 and increase by one
// for every recorded command, including commands replayed via recall.
type HistoryEntry struct {
	ID   uint
	Text string
}

// History is a fixed-capacity ring of the most recent commands. When the
// ring is full the oldest entry is silently overwritten. Overwritten IDs are
// permanently unrecoverable.
//
// A History belongs to a single session goroutine; it is not safe for
// concurrent use.
type History struct {
	entries []HistoryEntry
	cursor  int
	nextID  uint
}

// NewHistory creates an empty history ring with the given capacity. A
// capacity below one falls back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistorySize
	}
	return &History{
		entries: make([]HistoryEntry, capacity),
		nextID:  1,
	}
}

// Record stores the raw command text under a fresh ID. Empty or
// whitespace-only text is never recorded.
func (h *History) Record(raw string) {
	if Blank(raw) {
		return
	}
	h.entries[h.cursor] = HistoryEntry{ID: h.nextID, Text: raw}
	h.nextID++
	h.cursor = (h.cursor + 1) % len(h.entries)
}

// Lookup returns the text recorded under id. The second return is false if
// the ID was never issued or its entry has been overwritten.
func (h *History) Lookup(id uint) (string, bool) {
	for _, e := range h.entries {
		if e.ID != 0 && e.ID == id {
			return e.Text, true
		}
	}
	return "", false
}

// Enumerate returns the surviving entries oldest first. Once the ring has
// wrapped, the slot at the cursor holds the oldest entry; before that the
// walk simply starts at slot zero and skips the unused slots.
func (h *History) Enumerate() []HistoryEntry {
	out := make([]HistoryEntry, 0, len(h.entries))
	for i := 0; i < len(h.entries); i++ {
		e := h.entries[(h.cursor+i)%len(h.entries)]
		if e.ID != 0 {
			out = append(out, e)
		}
	}
	return out
}

// NextID returns the ID the next recorded command will receive. Recall uses
// it to reject references to IDs that were never issued.
func (h *History) NextID() uint {
	return h.nextID
}

// Clear drops every entry. ID assignment is not reset; cleared IDs are gone
// for good, like overwritten ones.
func (h *History) Clear() {
	for i := range h.entries {
		h.entries[i] = HistoryEntry{}
	}
	h.cursor = 0
}
