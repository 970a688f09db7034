// pkg/types/set.go
package types

import "sort"

// EntrySet holds entries unique by link. The first entry added for a link is kept.
type EntrySet map[string]Entry

// NewEntrySet creates a set from the given entries
func NewEntrySet(entries ...Entry) EntrySet {
	s := make(EntrySet, len(entries))
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts the entry unless one with the same link is present.
// It reports whether the set changed.
func (s EntrySet) Add(e Entry) bool {
	if _, exists := s[e.Key()]; exists {
		return false
	}
	s[e.Key()] = e
	return true
}

// Union adds every entry of other into s and returns the number added
func (s EntrySet) Union(other EntrySet) int {
	added := 0
	for _, e := range other {
		if s.Add(e) {
			added++
		}
	}
	return added
}

// Contains reports whether an entry with the given link is present
func (s EntrySet) Contains(link string) bool {
	_, ok := s[link]
	return ok
}

// Len returns the number of entries
func (s EntrySet) Len() int {
	return len(s)
}

// Slice returns the entries ordered by link
func (s EntrySet) Slice() []Entry {
	out := make([]Entry, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Link < out[j].Link })
	return out
}

// Equal reports whether both sets hold the same links
func (s EntrySet) Equal(other EntrySet) bool {
	if len(s) != len(other) {
		return false
	}
	for link := range s {
		if _, ok := other[link]; !ok {
			return false
		}
	}
	return true
}

// WatchEventSet holds watch events unique by link
type WatchEventSet map[string]WatchEvent

// NewWatchEventSet creates a set from the given events
func NewWatchEventSet(events ...WatchEvent) WatchEventSet {
	s := make(WatchEventSet, len(events))
	for _, e := range events {
		s.Add(e)
	}
	return s
}

// Add inserts the event unless one with the same link is present
func (s WatchEventSet) Add(e WatchEvent) bool {
	if _, exists := s[e.Key()]; exists {
		return false
	}
	s[e.Key()] = e
	return true
}

// Union adds every event of other into s and returns the number added
func (s WatchEventSet) Union(other WatchEventSet) int {
	added := 0
	for _, e := range other {
		if s.Add(e) {
			added++
		}
	}
	return added
}

// Len returns the number of events
func (s WatchEventSet) Len() int {
	return len(s)
}

// Slice returns the events ordered by link
func (s WatchEventSet) Slice() []WatchEvent {
	out := make([]WatchEvent, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Link < out[j].Link })
	return out
}

// Equal reports whether both sets hold the same links
func (s WatchEventSet) Equal(other WatchEventSet) bool {
	if len(s) != len(other) {
		return false
	}
	for link := range s {
		if _, ok := other[link]; !ok {
			return false
		}
	}
	return true
}

// Entries maps every event to an entry. Events sharing a link collapse into one entry.
func (s WatchEventSet) Entries() EntrySet {
	out := make(EntrySet, len(s))
	for _, e := range s {
		out.Add(e.ToEntry())
	}
	return out
}
