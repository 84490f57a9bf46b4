package usecase

import (
	"context"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/application/ports"
	"github.com/ferreinv/inventario-api/internal/domain"
)

// UploadUseCase flujo de carga directa a S3: el cliente pide una URL
// firmada, sube el archivo él mismo y luego resuelve la URL de lectura.
type UploadUseCase struct {
	storage ports.ObjectStorage
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(storage ports.ObjectStorage) *UploadUseCase {
	return &UploadUseCase{storage: storage}
}

// Presign genera la URL de carga y la key del objeto.
func (uc *UploadUseCase) Presign(ctx context.Context, in dto.PresignedUploadRequest) (*dto.PresignedUploadResponse, error) {
	if in.FileName == "" || in.ContentType == "" {
		return nil, domain.ErrInvalidInput
	}
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	uploadURL, path, err := uc.storage.PresignUpload(ctx, in.FileName, in.ContentType, isPublic)
	if err != nil {
		return nil, err
	}
	return &dto.PresignedUploadResponse{UploadURL: uploadURL, CloudStoragePath: path}, nil
}

// Complete resuelve la URL de lectura del objeto ya subido.
func (uc *UploadUseCase) Complete(ctx context.Context, in dto.CompleteUploadRequest) (*dto.CompleteUploadResponse, error) {
	if in.CloudStoragePath == "" {
		return nil, domain.ErrInvalidInput
	}
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	url, err := uc.storage.FileURL(ctx, in.CloudStoragePath, isPublic)
	if err != nil {
		return nil, err
	}
	return &dto.CompleteUploadResponse{
		ImageURL:         url,
		CloudStoragePath: in.CloudStoragePath,
		IsPublic:         isPublic,
	}, nil
}
