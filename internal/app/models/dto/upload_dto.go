package dto

// UploadResponse describes a stored file
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
