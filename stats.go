package smartdiff

// Stats holds statistical metadata about a diff
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	LeftDiffs  int `json:"leftDiffs"`  // number of differing locations in the left tree
	RightDiffs int `json:"rightDiffs"` // number of differing locations in the right tree

	LeftLines  int `json:"leftLines,omitempty"`  // highlighted lines of the left rendering
	RightLines int `json:"rightLines,omitempty"` // highlighted lines of the right rendering
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// Changed reports whether any differing location was found
func (s Stats) Changed() bool {
	return s.LeftDiffs > 0 || s.RightDiffs > 0
}
