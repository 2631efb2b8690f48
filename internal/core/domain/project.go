package domain

// Project is a content project held by the external RAG API.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Asset is a single file stored under a RAG project.
type Asset struct {
	Name string `json:"name"`
	Size int64  `json:"size,omitempty"`
}

// IndexInfo describes the vector-index state of one project, as reported by
// the RAG API's collection_info block. Different API versions expose the
// vector total under different field names.
type IndexInfo struct {
	IndexedVectorsCount int64 `json:"indexedVectorsCount"`
	PointsCount         int64 `json:"pointsCount"`
	VectorsCount        int64 `json:"vectorsCount"`
}

// IndexedCount resolves the vector total across API versions: the dedicated
// indexed counter wins, then points, then raw vectors.
func (i *IndexInfo) IndexedCount() int64 {
	if i == nil {
		return 0
	}
	if i.IndexedVectorsCount > 0 {
		return i.IndexedVectorsCount
	}
	if i.PointsCount > 0 {
		return i.PointsCount
	}
	return i.VectorsCount
}
