package algorithms

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []string
	Size    int
	Density float64 // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64        // Quality measure of the partitioning
	NodeCommunity map[string]int // Node ID -> Community ID
}

// CommunityCount returns the number of non-empty communities
func (r *CommunityDetectionResult) CommunityCount() int {
	return len(r.Communities)
}
