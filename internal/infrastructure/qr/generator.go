// Package qr renderiza códigos QR de etiquetas de producto como data URL
// PNG, listos para incrustar en un <img>.
package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	qrcode "github.com/boombuler/barcode/qr"

	"github.com/ferreinv/inventario-api/internal/application/ports"
)

var _ ports.QRGenerator = (*Generator)(nil)

// Generator implementa ports.QRGenerator con boombuler/barcode.
type Generator struct{}

// NewGenerator construye el generador.
func NewGenerator() *Generator { return &Generator{} }

// DataURL codifica el payload como QR (corrección de errores M), lo escala
// al tamaño indicado y lo devuelve como data URL PNG base64.
func (g *Generator) DataURL(payload []byte, size int) (string, error) {
	code, err := qrcode.Encode(string(payload), qrcode.M, qrcode.Auto)
	if err != nil {
		return "", fmt.Errorf("codificar QR: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return "", fmt.Errorf("escalar QR: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("codificar PNG: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
