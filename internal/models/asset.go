package models

// StoredAsset describes one ingested binary payload: where it landed on
// disk and how clients can reach it.
type StoredAsset struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
	Path         string `json:"-"` // absolute path inside the storage tree
	PublicRef    string `json:"url"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"size"`
}
