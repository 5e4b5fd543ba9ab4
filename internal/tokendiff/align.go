package tokendiff

import "fmt"

// ScoredDiff pairs a diff with a normalized change score (0 for identical
// inputs, higher for more divergent ones).
type ScoredDiff struct {
	Score float64
	Diff  TokenDiff
}

// ScoredDiffWordtoks scores the diff between two wordtok sequences as
// (added+removed)/min(len1,len2).
func ScoredDiffWordtoks(wordtoks1, wordtoks2 []string) (ScoredDiff, error) {
	if len(wordtoks1) == 0 || len(wordtoks2) == 0 {
		return ScoredDiff{}, fmt.Errorf("tokendiff: cannot score diff for empty token sequence")
	}
	diff := DiffWordtoks(wordtoks1, wordtoks2)
	minLen := len(wordtoks1)
	if len(wordtoks2) < minLen {
		minLen = len(wordtoks2)
	}
	score := float64(diff.Stats().NChanges()) / float64(minLen)
	return ScoredDiff{Score: score, Diff: diff}, nil
}

// AlignOptions tunes FindBestAlignment's search.
type AlignOptions struct {
	MaxOverlap  int // 0 means no extra cap beyond len(list1)/len(list2)
	GiveUpScore float64
	GiveUpCount int
	ScoredDiff  func(a, b []string) (ScoredDiff, error)
}

// DefaultAlignOptions matches the defaults used throughout the sliding
// window stitching code.
func DefaultAlignOptions() AlignOptions {
	return AlignOptions{GiveUpScore: 0.75, GiveUpCount: 30, ScoredDiff: ScoredDiffWordtoks}
}

// FindBestAlignment finds where list2 best overlaps the tail of list1 —
// the offset into list1 (and an overlap length in [minOverlap, maxOverlap])
// minimizing edit-distance score. Used to stitch sliding-window transform
// outputs together without duplicating or dropping tokens.
func FindBestAlignment(list1, list2 []string, minOverlap int, opts AlignOptions) (int, ScoredDiff, error) {
	if opts.ScoredDiff == nil {
		opts.ScoredDiff = ScoredDiffWordtoks
	}
	if opts.GiveUpCount == 0 {
		opts.GiveUpCount = 30
	}
	if opts.GiveUpScore == 0 {
		opts.GiveUpScore = 0.75
	}

	len1, len2 := len(list1), len(list2)
	maxOverlap := len1
	if len2 < maxOverlap {
		maxOverlap = len2
	}
	if opts.MaxOverlap > 0 && opts.MaxOverlap < maxOverlap {
		maxOverlap = opts.MaxOverlap
	}

	if minOverlap > len1 || minOverlap > len2 {
		return 0, ScoredDiff{}, fmt.Errorf("tokendiff: minimum overlap %d exceeds a list length (%d, %d)", minOverlap, len1, len2)
	}

	bestOffset := -1
	bestScore := -1.0
	var bestDiff ScoredDiff
	haveBest := false

	scoresIncreasing := 0
	prevScore := -1.0 // sentinel: first comparison always treated as not-yet-increasing

	for overlap := minOverlap; overlap <= maxOverlap; overlap++ {
		start1 := len1 - overlap
		sd, err := opts.ScoredDiff(list1[start1:len1], list2[0:overlap])
		if err != nil {
			return 0, ScoredDiff{}, err
		}

		if !haveBest || sd.Score < bestScore {
			bestScore = sd.Score
			bestOffset = start1
			bestDiff = sd
			haveBest = true
			scoresIncreasing = 0
		} else if sd.Score >= opts.GiveUpScore && sd.Score >= prevScore {
			scoresIncreasing++
			if scoresIncreasing >= opts.GiveUpCount {
				break
			}
		}
		prevScore = sd.Score
	}

	if !haveBest {
		return 0, ScoredDiff{}, fmt.Errorf("tokendiff: no alignment found")
	}
	return bestOffset, bestDiff, nil
}
