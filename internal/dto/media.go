package dto

// MediaUploadResponse describes a stored observation attachment.
type MediaUploadResponse struct {
	URL         string `json:"url"`
	Kind        string `json:"tipo"`
	ContentType string `json:"content_type"`
	Size        int    `json:"tamanho"`
}
