package gosocial

// DiffResult describes how a regenerated result differs from the previous one.
type DiffResult struct {
	// CaptionChanged is true when the captions differ.
	CaptionChanged bool

	// AddedHashtags are tags present only in the new result.
	AddedHashtags []string

	// RemovedHashtags are tags present only in the old result.
	RemovedHashtags []string

	// KeptHashtags are tags present in both results.
	KeptHashtags []string

	// AddedIdeas and RemovedIdeas compare post ideas by exact text.
	AddedIdeas   []string
	RemovedIdeas []string
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	AddedHashtags   int
	RemovedHashtags int
	KeptHashtags    int
	AddedIdeas      int
	RemovedIdeas    int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		AddedHashtags:   len(d.AddedHashtags),
		RemovedHashtags: len(d.RemovedHashtags),
		KeptHashtags:    len(d.KeptHashtags),
		AddedIdeas:      len(d.AddedIdeas),
		RemovedIdeas:    len(d.RemovedIdeas),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return d.CaptionChanged ||
		len(d.AddedHashtags) > 0 || len(d.RemovedHashtags) > 0 ||
		len(d.AddedIdeas) > 0 || len(d.RemovedIdeas) > 0
}

// DiffResults compares two results. A nil result counts as empty.
// Output slices keep the order of their source result.
func DiffResults(old, new *GenerationResult) *DiffResult {
	var o, n GenerationResult
	if old != nil {
		o = *old
	}
	if new != nil {
		n = *new
	}

	d := &DiffResult{CaptionChanged: o.Caption != n.Caption}
	d.AddedHashtags, d.KeptHashtags = partition(n.Hashtags, o.Hashtags)
	d.RemovedHashtags, _ = partition(o.Hashtags, n.Hashtags)
	d.AddedIdeas, _ = partition(n.PostIdeas, o.PostIdeas)
	d.RemovedIdeas, _ = partition(o.PostIdeas, n.PostIdeas)
	return d
}

// partition splits items into those missing from other and those present in it.
func partition(items, other []string) (missing, present []string) {
	seen := make(map[string]bool, len(other))
	for _, s := range other {
		seen[s] = true
	}
	for _, s := range items {
		if seen[s] {
			present = append(present, s)
		} else {
			missing = append(missing, s)
		}
	}
	return missing, present
}
