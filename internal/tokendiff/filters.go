package tokendiff

import "weft/internal/wordtok"

// TokenPattern matches a single token: either a literal string, a
// predicate, or the Wildcard sentinel (matches zero or more tokens).
type TokenPattern interface{}

// wildcardType is the sentinel type for Wildcard.
type wildcardType struct{}

// Wildcard matches any run of tokens, including none.
var Wildcard TokenPattern = wildcardType{}

// TokenPredicate is a predicate usable as a TokenPattern element.
type TokenPredicate func(tok string) bool

func patternMatches(tok string, pattern TokenPattern) bool {
	switch p := pattern.(type) {
	case string:
		return tok == p
	case TokenPredicate:
		return p(tok)
	case func(string) bool:
		return p(tok)
	default:
		return false
	}
}

// matchesPattern reports whether tokens match pattern in full, where
// pattern elements may be literal strings, predicates, or Wildcard.
func matchesPattern(tokens []string, pattern []TokenPattern) bool {
	var matchFrom func(i, j int) bool
	matchFrom = func(i, j int) bool {
		for i <= len(tokens) && j < len(pattern) {
			elem := pattern[j]
			if _, isWildcard := elem.(wildcardType); isWildcard {
				if j+1 == len(pattern) {
					return true
				}
				j++
				for k := i; k <= len(tokens); k++ {
					if matchFrom(k, j) {
						return true
					}
				}
				return false
			}
			if i >= len(tokens) {
				return false
			}
			if !patternMatches(tokens[i], elem) {
				return false
			}
			i++
			j++
		}
		for j < len(pattern) {
			if _, isWildcard := pattern[j].(wildcardType); !isWildcard {
				break
			}
			j++
		}
		return i == len(tokens) && j == len(pattern)
	}
	return matchFrom(0, 0)
}

// TokenIgnore optionally strips tokens matching a predicate before pattern
// matching, so e.g. whitespace inserted around a match doesn't break it.
type TokenIgnore func(tok string) bool

// MakeTokenSequenceFilter builds a DiffFilter that accepts ops whose
// changed tokens (optionally filtered by ignore) match pattern, restricted
// to the given action if action is non-nil.
func MakeTokenSequenceFilter(pattern []TokenPattern, action *OpType, ignore TokenIgnore) DiffFilter {
	return func(op DiffOp) bool {
		if action != nil && op.Action != *action {
			return false
		}
		tokens := op.AllChanged()
		if ignore != nil {
			filtered := tokens[:0:0]
			for _, t := range tokens {
				if !ignore(t) {
					filtered = append(filtered, t)
				}
			}
			tokens = filtered
		}
		return matchesPattern(tokens, pattern)
	}
}

// AddsOrRemovesWhitespace accepts only changes limited to sentence/
// paragraph breaks and whitespace.
func AddsOrRemovesWhitespace(op DiffOp) bool {
	for _, tok := range op.AllChanged() {
		if !wordtok.IsBreakOrSpace(tok) {
			return false
		}
	}
	return true
}

// AddsOrRemovesPunctWhitespace accepts only changes to punctuation and
// whitespace (nothing that adds or removes a word).
func AddsOrRemovesPunctWhitespace(op DiffOp) bool {
	for _, tok := range op.AllChanged() {
		if wordtok.IsWord(tok) {
			return false
		}
	}
	return true
}

var headingTagNames = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// AddsHeadings accepts only insertions that add a complete heading tag
// (<h1>..</h1> through <h6>..</h6>), ignoring surrounding whitespace.
func AddsHeadings(op DiffOp) bool {
	insert := Insert
	isHeaderOpen := TokenPredicate(func(tok string) bool { return wordtok.IsTagNamed(tok, headingTagNames) })
	isHeaderClose := TokenPredicate(func(tok string) bool { return wordtok.IsTagCloseNamed(tok, headingTagNames) })
	matcher := MakeTokenSequenceFilter(
		[]TokenPattern{isHeaderOpen, Wildcard, isHeaderClose},
		&insert,
		wordtok.IsBreakOrSpace,
	)
	return matcher(op)
}
