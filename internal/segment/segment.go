// Package segment implements the ordered segment list that underlies the
// editor: a sequence of records that together account for every byte of
// an immutable original text, plus the split/replace primitives the
// editor composes into append_left, append_right, and overwrite.
package segment

import "sort"

// Segment is one contiguous run of eventual output. Content is either a
// slice of the original text (source-backed, SourceOffset valid) or a
// freshly allocated replacement (HasSource false). Intro and Outro hold
// insertion bytes bound to this segment's leading and trailing edges.
type Segment struct {
	Content       []byte
	HasSource     bool
	SourceOffset  int
	OriginalStart int
	OriginalEnd   int
	Intro         []byte
	Outro         []byte
}

// Len returns the number of original bytes this segment accounts for.
func (s *Segment) Len() int {
	return s.OriginalEnd - s.OriginalStart
}

// Store is the ordered segment list L of the data model: segments are
// kept sorted and adjacent by OriginalStart/OriginalEnd at all times.
type Store struct {
	segs []*Segment
}

// NewStore seeds a Store covering source with a single source-backed
// segment, or no segments at all if source is empty.
func NewStore(source []byte) *Store {
	s := &Store{}
	if len(source) > 0 {
		s.segs = []*Segment{{
			Content:       source,
			HasSource:     true,
			SourceOffset:  0,
			OriginalStart: 0,
			OriginalEnd:   len(source),
		}}
	}
	return s
}

// Segments returns the live segment list in order. Callers must not
// mutate the returned slice's backing array structure (splitting or
// replacing); individual Intro/Outro buffers may be appended to.
func (s *Store) Segments() []*Segment {
	return s.segs
}

// Len reports the number of segments currently in the store.
func (s *Store) Len() int {
	return len(s.segs)
}

// indexContainingOriginal returns the index of the segment whose
// [OriginalStart, OriginalEnd) contains p, or -1 if none does.
func (s *Store) indexContainingOriginal(p int) int {
	n := len(s.segs)
	if n == 0 {
		return -1
	}
	i := sort.Search(n, func(i int) bool {
		return s.segs[i].OriginalStart > p
	}) - 1
	if i < 0 || i >= n {
		return -1
	}
	seg := s.segs[i]
	if p >= seg.OriginalStart && p < seg.OriginalEnd {
		return i
	}
	return -1
}

// FindByOriginal returns the index of the unique segment whose original
// range contains p.
func (s *Store) FindByOriginal(p int) (int, bool) {
	i := s.indexContainingOriginal(p)
	return i, i >= 0
}

// FindBySource returns the index of the unique source-backed segment
// whose [SourceOffset, SourceOffset+len(Content)) contains p. It fails
// if the byte at p has since been overwritten, even though
// FindByOriginal would still locate a (replacement) segment there.
func (s *Store) FindBySource(p int) (int, bool) {
	i := s.indexContainingOriginal(p)
	if i < 0 || !s.segs[i].HasSource {
		return -1, false
	}
	return i, true
}

// Last returns the final segment in the store, or nil if the store is
// empty.
func (s *Store) Last() *Segment {
	if len(s.segs) == 0 {
		return nil
	}
	return s.segs[len(s.segs)-1]
}

// Split divides segment i at byte offset rel relative to its own
// Content. The left child keeps Intro, the right child keeps Outro, and
// both halves remain source-backed slices of the original text.
func (s *Store) Split(i, rel int) {
	seg := s.segs[i]
	left := &Segment{
		Content:       seg.Content[:rel],
		HasSource:     true,
		SourceOffset:  seg.SourceOffset,
		OriginalStart: seg.OriginalStart,
		OriginalEnd:   seg.OriginalStart + rel,
		Intro:         seg.Intro,
	}
	right := &Segment{
		Content:       seg.Content[rel:],
		HasSource:     true,
		SourceOffset:  seg.SourceOffset + rel,
		OriginalStart: seg.OriginalStart + rel,
		OriginalEnd:   seg.OriginalEnd,
		Outro:         seg.Outro,
	}

	next := make([]*Segment, 0, len(s.segs)+1)
	next = append(next, s.segs[:i]...)
	next = append(next, left, right)
	next = append(next, s.segs[i+1:]...)
	s.segs = next
}

// ReplaceRange drops segments [a, b] inclusive and inserts a single
// replacement segment spanning their combined original range, carrying
// content and the saved intro/outro that bound to the unchanged edges.
func (s *Store) ReplaceRange(a, b int, content, intro, outro []byte) {
	segA := s.segs[a]
	segB := s.segs[b]
	replacement := &Segment{
		Content:       content,
		HasSource:     false,
		OriginalStart: segA.OriginalStart,
		OriginalEnd:   segB.OriginalEnd,
		Intro:         intro,
		Outro:         outro,
	}

	next := make([]*Segment, 0, len(s.segs)-(b-a))
	next = append(next, s.segs[:a]...)
	next = append(next, replacement)
	next = append(next, s.segs[b+1:]...)
	s.segs = next
}
