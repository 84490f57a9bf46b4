package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferreinv/inventario-api/internal/application/dto"
	"github.com/ferreinv/inventario-api/internal/application/usecase"
)

// UploadHandler carga de imágenes vía URLs firmadas de S3.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Presign godoc
// @Summary      Obtener URL firmada de carga
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PresignedUploadRequest  true  "fileName, contentType, isPublic opcional"
// @Success      200   {object}  dto.PresignedUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload/presigned [post]
func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	var in dto.PresignedUploadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Presign(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Resolver URL de lectura del objeto subido
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteUploadRequest  true  "cloudStoragePath, isPublic opcional"
// @Success      200   {object}  dto.CompleteUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload/complete [post]
func (h *UploadHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteUploadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Complete(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
