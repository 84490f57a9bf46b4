// Package storage implementa el puerto ObjectStorage sobre Amazon S3.
// El servidor nunca recibe los bytes: entrega URLs firmadas y el cliente
// sube/descarga directo contra el bucket.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ferreinv/inventario-api/internal/application/ports"
	"github.com/ferreinv/inventario-api/pkg/config"
)

var _ ports.ObjectStorage = (*S3Storage)(nil)

const presignExpiry = time.Hour

// S3Storage adaptador S3 para imágenes de producto.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	prefix  string // prefijo de carpeta dentro del bucket, puede ser vacío
	region  string
}

// NewS3Storage construye el adaptador con credenciales del entorno
// (cadena de proveedores por defecto del SDK).
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		prefix:  cfg.FolderPrefix,
		region:  cfg.Region,
	}, nil
}

// PresignUpload genera una URL PUT firmada (1h) y la key del objeto.
// Las cargas públicas van bajo public/uploads/, las privadas bajo uploads/.
func (s *S3Storage) PresignUpload(ctx context.Context, fileName, contentType string, isPublic bool) (string, string, error) {
	folder := "uploads/"
	if isPublic {
		folder = "public/uploads/"
	}
	key := fmt.Sprintf("%s%s%d-%s", s.prefix, folder, time.Now().UnixMilli(), fileName)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	if isPublic {
		input.ContentDisposition = aws.String("attachment")
	}
	req, err := s.presign.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = presignExpiry
	})
	if err != nil {
		return "", "", fmt.Errorf("firmar URL de carga: %w", err)
	}
	return req.URL, key, nil
}

// FileURL devuelve la URL de lectura: directa para objetos públicos,
// GET firmado (1h) para privados.
func (s *S3Storage) FileURL(ctx context.Context, storagePath string, isPublic bool) (string, error) {
	if isPublic {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, storagePath), nil
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(storagePath),
		ResponseContentDisposition: aws.String("attachment"),
	}, func(o *s3.PresignOptions) {
		o.Expires = presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("firmar URL de lectura: %w", err)
	}
	return req.URL, nil
}

// Delete elimina un objeto del bucket.
func (s *S3Storage) Delete(ctx context.Context, storagePath string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storagePath),
	})
	if err != nil {
		return fmt.Errorf("eliminar objeto %s: %w", storagePath, err)
	}
	return nil
}
