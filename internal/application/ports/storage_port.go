// Package ports define interfaces hacia colaboradores externos del núcleo
// (almacenamiento de objetos, generación de QR). Las implementaciones viven
// en internal/infrastructure.
package ports

import "context"

// ObjectStorage puerto hacia el almacenamiento de objetos (S3).
// Delete es best-effort en los flujos de producto: el caller registra el
// fallo en log y continúa, nunca propaga.
type ObjectStorage interface {
	PresignUpload(ctx context.Context, fileName, contentType string, isPublic bool) (uploadURL, storagePath string, err error)
	FileURL(ctx context.Context, storagePath string, isPublic bool) (string, error)
	Delete(ctx context.Context, storagePath string) error
}

// QRGenerator puerto para renderizar códigos QR como data URL PNG.
type QRGenerator interface {
	DataURL(payload []byte, size int) (string, error)
}
