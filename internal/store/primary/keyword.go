package primary

import (
	"weft/internal/store"
)

// --- Keyword Search ---

// Ensure StoreImpl satisfies the KeywordSearcher interface
var _ store.KeywordSearcher = (*StoreImpl)(nil)
