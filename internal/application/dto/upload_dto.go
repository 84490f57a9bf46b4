package dto

// PresignedUploadRequest entrada para generar una URL de carga directa a S3.
type PresignedUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	IsPublic    *bool  `json:"isPublic"` // default true
}

// PresignedUploadResponse URL firmada y key del objeto resultante.
type PresignedUploadResponse struct {
	UploadURL        string `json:"uploadUrl"`
	CloudStoragePath string `json:"cloudStoragePath"`
}

// CompleteUploadRequest entrada para resolver la URL final de un objeto subido.
type CompleteUploadRequest struct {
	CloudStoragePath string `json:"cloudStoragePath" validate:"required"`
	IsPublic         *bool  `json:"isPublic"`
}

// CompleteUploadResponse URL de lectura del objeto.
type CompleteUploadResponse struct {
	ImageURL         string `json:"imageUrl"`
	CloudStoragePath string `json:"cloudStoragePath"`
	IsPublic         bool   `json:"isPublic"`
}
