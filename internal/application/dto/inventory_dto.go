package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	Code     string `json:"code"`
	Type     string `json:"type"` // ENTRADA | SALIDA (case-insensitive)
	Quantity int    `json:"quantity"`
	User     string `json:"user"`
	Note     string `json:"note,omitempty"`
}

// MovementReceiptResponse respuesta de un movimiento confirmado.
type MovementReceiptResponse struct {
	Code       string `json:"code"`
	Type       string `json:"type"`
	Quantity   int    `json:"quantity"`
	NewBalance int    `json:"new_balance"`
	Timestamp  string `json:"timestamp"` // hora del negocio, YYYY-MM-DD HH:MM:SS
}

// MovementDTO una fila del log de movimientos.
type MovementDTO struct {
	Timestamp   string `json:"timestamp"`
	Code        string `json:"code"`
	Description string `json:"description"`
	User        string `json:"user"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note,omitempty"`
}

// CatalogItemDTO una herramienta del catálogo.
type CatalogItemDTO struct {
	Code              string `json:"code"`
	Description       string `json:"description"`
	Status            string `json:"status"`
	Location          string `json:"location"`
	Balance           int    `json:"balance"`
	PhysicalCount     *int   `json:"physical_count,omitempty"`
	PhysicalCountDate string `json:"physical_count_date,omitempty"`
}

// CreateCatalogItemRequest body para POST /api/catalog.
type CreateCatalogItemRequest struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	Status        string `json:"status,omitempty"`
	Location      string `json:"location,omitempty"`
	BaselineStock int    `json:"baseline_stock"`
}

// ReconcileResponse respuesta de la reconciliación de balance.
type ReconcileResponse struct {
	Code    string `json:"code"`
	Balance int    `json:"balance"`
}

const timestampLayout = "2006-01-02 15:04:05"

// FromMovement convierte la entidad al DTO de respuesta.
func FromMovement(m *entity.Movement) MovementDTO {
	ts := ""
	if !m.Timestamp.IsZero() {
		ts = m.Timestamp.Format(timestampLayout)
	}
	return MovementDTO{
		Timestamp:   ts,
		Code:        m.Code,
		Description: m.Description,
		User:        m.User,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Note:        m.Note,
	}
}

// FromCatalogItem convierte la entidad al DTO de respuesta.
func FromCatalogItem(item *entity.CatalogItem) CatalogItemDTO {
	return CatalogItemDTO{
		Code:              item.Code,
		Description:       item.Description,
		Status:            item.Status,
		Location:          item.Location,
		Balance:           item.CachedBalance,
		PhysicalCount:     item.PhysicalCount,
		PhysicalCountDate: item.PhysicalCountDate,
	}
}

// FormatTimestamp formatea la hora del negocio como en el log.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
