package http

import "github.com/rupamthxt/faceembed/internal/face"

type ExtractRequest struct {
	ImagePaths []string `json:"image_paths"`
}

type ExtractResponse struct {
	Success    bool             `json:"success"`
	Embeddings []face.Embedding `json:"embeddings"`
	Count      int              `json:"count"`
}

type CompareRequest struct {
	ProbeEmbedding    face.Embedding   `json:"probe_embedding"`
	GalleryEmbeddings []face.Embedding `json:"gallery_embeddings"`
	Threshold         *float64         `json:"threshold"` // nil means use the configured default
}

type CompareResponse struct {
	Success    bool    `json:"success"`
	Match      bool    `json:"match"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
