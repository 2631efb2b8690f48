package domain

import (
	"strings"
	"time"
)

// FileCategory is the fixed classification bucket for a stored asset.
type FileCategory string

const (
	CategoryPDF        FileCategory = "pdf"
	CategoryDoc        FileCategory = "doc"
	CategoryDocx       FileCategory = "docx"
	CategoryTxt        FileCategory = "txt"
	CategoryMarkdown   FileCategory = "markdown"
	CategoryExcel      FileCategory = "excel"
	CategoryPowerPoint FileCategory = "powerpoint"
	CategoryImage      FileCategory = "image"
	CategoryOther      FileCategory = "other"
)

// extensionCategories maps a lowercased file extension to its category.
var extensionCategories = map[string]FileCategory{
	"pdf":  CategoryPDF,
	"doc":  CategoryDoc,
	"docx": CategoryDocx,
	"txt":  CategoryTxt,
	"md":   CategoryMarkdown,
	"xls":  CategoryExcel,
	"xlsx": CategoryExcel,
	"ppt":  CategoryPowerPoint,
	"pptx": CategoryPowerPoint,
	"jpg":  CategoryImage,
	"jpeg": CategoryImage,
	"png":  CategoryImage,
	"gif":  CategoryImage,
}

var categoryLabels = map[FileCategory]string{
	CategoryPDF:        "PDF",
	CategoryDoc:        "Word (DOC)",
	CategoryDocx:       "Word (DOCX)",
	CategoryTxt:        "Text",
	CategoryMarkdown:   "Markdown",
	CategoryExcel:      "Excel",
	CategoryPowerPoint: "PowerPoint",
	CategoryImage:      "Images",
	CategoryOther:      "Other",
}

// ClassifyFileName buckets a file name by its extension, case-insensitively.
// Names without an extension fall into CategoryOther.
func ClassifyFileName(name string) FileCategory {
	if name == "" {
		return CategoryOther
	}
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return CategoryOther
	}
	ext := strings.ToLower(name[idx+1:])
	if cat, ok := extensionCategories[ext]; ok {
		return cat
	}
	return CategoryOther
}

// Label returns the human-readable chart label for a category.
func (c FileCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return strings.ToUpper(string(c))
}

// SystemHealth grades the indexing progress percentage for display.
func SystemHealth(indexingProgress int) string {
	switch {
	case indexingProgress > 80:
		return "excellent"
	case indexingProgress > 60:
		return "good"
	default:
		return "needs_attention"
	}
}

// PieSlice is one entry of the dashboard's file-type chart.
type PieSlice struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

// DashboardSnapshot is the per-request aggregate over the RAG platform's
// content plus the local user count. It is never persisted.
type DashboardSnapshot struct {
	TotalProjects          int                  `json:"totalProjects"`
	TotalDocuments         int                  `json:"totalDocuments"`
	TotalIndexedDocuments  int64                `json:"totalIndexedDocuments"`
	TotalUsers             int64                `json:"totalUsers"`
	ActiveProjects         int                  `json:"activeProjects"`
	ProjectsWithIndexing   int                  `json:"projectsWithIndexing"`
	IndexingProgress       int                  `json:"indexingProgress"`
	FileTypeDistribution   map[FileCategory]int `json:"fileTypeDistribution"`
	FileTypePercentages    map[FileCategory]int `json:"fileTypePercentages"`
	AverageFilesPerProject int                  `json:"averageFilesPerProject"`
	SystemHealth           string               `json:"systemHealth"`
	LastUpdated            time.Time            `json:"lastUpdated"`
	PieChartData           []PieSlice           `json:"pieChartData"`
}
