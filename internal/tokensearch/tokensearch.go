// Package tokensearch provides a directional cursor over a token slice for
// locating offsets by predicate, without wraparound.
package tokensearch

import "fmt"

// Predicate matches a single token.
type Predicate func(tok string) bool

// Literal builds a Predicate that matches any token in allowed.
func Literal(allowed ...string) Predicate {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(tok string) bool {
		_, ok := set[tok]
		return ok
	}
}

// NotFoundError is returned when a seek has no matching token within bounds.
type NotFoundError struct {
	Direction string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no matching token found %s the current index", e.Direction)
}

// Searcher is a cursor over a token slice.
type Searcher struct {
	toks []string
	idx  int
	err  error
}

// Search returns a new Searcher over toks, positioned at index 0.
func Search(toks []string) *Searcher {
	return &Searcher{toks: toks}
}

func (s *Searcher) fail(err error) *Searcher {
	if s.err == nil {
		s.err = err
	}
	return s
}

// At repositions the cursor at index (negative indices count from the end).
func (s *Searcher) At(index int) *Searcher {
	if s.err != nil {
		return s
	}
	if index < 0 {
		index = len(s.toks) + index
	}
	if index < 0 || index >= len(s.toks) {
		return s.fail(fmt.Errorf("index %d out of range", index))
	}
	s.idx = index
	return s
}

// Start repositions the cursor at the first token.
func (s *Searcher) Start() *Searcher {
	if s.err != nil {
		return s
	}
	s.idx = 0
	return s
}

// End repositions the cursor one past the last token.
func (s *Searcher) End() *Searcher {
	if s.err != nil {
		return s
	}
	s.idx = len(s.toks)
	return s
}

// SeekBack moves the cursor to the nearest prior token matching pred.
func (s *Searcher) SeekBack(pred Predicate) *Searcher {
	if s.err != nil {
		return s
	}
	for i := s.idx - 1; i >= 0; i-- {
		if pred(s.toks[i]) {
			s.idx = i
			return s
		}
	}
	return s.fail(&NotFoundError{Direction: "before"})
}

// SeekForward moves the cursor to the nearest later token matching pred.
func (s *Searcher) SeekForward(pred Predicate) *Searcher {
	if s.err != nil {
		return s
	}
	for i := s.idx + 1; i < len(s.toks); i++ {
		if pred(s.toks[i]) {
			s.idx = i
			return s
		}
	}
	return s.fail(&NotFoundError{Direction: "after"})
}

// Prev moves the cursor back one token.
func (s *Searcher) Prev() *Searcher {
	if s.err != nil {
		return s
	}
	if s.idx-1 < 0 {
		return s.fail(fmt.Errorf("no previous token available"))
	}
	s.idx--
	return s
}

// Next moves the cursor forward one token.
func (s *Searcher) Next() *Searcher {
	if s.err != nil {
		return s
	}
	if s.idx+1 >= len(s.toks) {
		return s.fail(fmt.Errorf("no next token available"))
	}
	s.idx++
	return s
}

// Index returns the cursor's current index, or an error from an earlier
// failed step.
func (s *Searcher) Index() (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.idx, nil
}

// Token returns the cursor's current index and token, or an error from an
// earlier failed step.
func (s *Searcher) Token() (int, string, error) {
	if s.err != nil {
		return 0, "", s.err
	}
	return s.idx, s.toks[s.idx], nil
}
