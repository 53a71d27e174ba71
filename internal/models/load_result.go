package models

// LoadResult describes what one dashboard load did. Failed names the backend
// reads that did not succeed.
type LoadResult struct {
	Generation uint64
	Applied    bool
	Failed     []string
}
