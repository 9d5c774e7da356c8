package models

import (
	"time"

	"github.com/google/uuid"
)

// PreviewResponse reports the would-be next code without consuming it.
// CorrelativoCompleto is formatted for SiguienteNumero, matching what the UI
// shows before a report is actually filed.
type PreviewResponse struct {
	NumeroActual        int    `json:"numeroActual"`
	SiguienteNumero     int    `json:"siguienteNumero"`
	Sigla               string `json:"sigla"`
	CorrelativoCompleto string `json:"correlativoCompleto"`
	Año                 int    `json:"año"`
}

// IssuanceResponse is returned once a number has been consumed.
type IssuanceResponse struct {
	ID                  uuid.UUID `json:"id"`
	Numero              int       `json:"numero"`
	Sigla               string    `json:"sigla"`
	CorrelativoCompleto string    `json:"correlativoCompleto"`
	Año                 int       `json:"año"`
	FechaGeneracion     time.Time `json:"fechaGeneracion"`
}

// FromRecord shapes an issuance record for the wire.
func FromRecord(rec *IssuanceRecord) *IssuanceResponse {
	return &IssuanceResponse{
		ID:                  rec.ID,
		Numero:              rec.Number,
		Sigla:               rec.Sigla,
		CorrelativoCompleto: rec.Code,
		Año:                 rec.Year,
		FechaGeneracion:     rec.IssuedAt,
	}
}

// HistoryEntry is one line of the issuance audit view.
type HistoryEntry struct {
	Numero              int       `json:"numero"`
	CorrelativoCompleto string    `json:"correlativoCompleto"`
	UsuarioID           int64     `json:"usuarioId"`
	FechaGeneracion     time.Time `json:"fechaGeneracion"`
}

// HistoryResponse lists every code issued for one (activity type, year) key.
type HistoryResponse struct {
	TipoActividadID int64          `json:"tipoActividadId"`
	Año             int            `json:"año"`
	Total           int            `json:"total"`
	Registros       []HistoryEntry `json:"registros"`
}

// HistoryFromRecords shapes issuance records for the wire.
func HistoryFromRecords(key CounterKey, recs []*IssuanceRecord) *HistoryResponse {
	entries := make([]HistoryEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, HistoryEntry{
			Numero:              rec.Number,
			CorrelativoCompleto: rec.Code,
			UsuarioID:           rec.IssuedBy,
			FechaGeneracion:     rec.IssuedAt,
		})
	}
	return &HistoryResponse{
		TipoActividadID: key.ActivityTypeID,
		Año:             key.Year,
		Total:           len(entries),
		Registros:       entries,
	}
}
