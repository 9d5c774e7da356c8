package models

import (
	dErrors "correlativos/pkg/domain-errors"
)

// AllocateRequest is the POST /correlativos payload. UsuarioID may be omitted
// when the session middleware has already resolved the acting user.
type AllocateRequest struct {
	TipoActividadID int64 `json:"tipoActividadId"`
	UsuarioID       int64 `json:"usuarioId,omitempty"`
}

// Normalize fills the acting user from the session identity when the payload
// leaves it out. The payload value wins when both are present.
func (r *AllocateRequest) Normalize(sessionUserID int64) {
	if r == nil {
		return
	}
	if r.UsuarioID == 0 {
		r.UsuarioID = sessionUserID
	}
}

// Follows validation order: Required -> Syntax -> Semantic.
func (r *AllocateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if r.TipoActividadID == 0 {
		return dErrors.New(dErrors.CodeValidation, "tipoActividadId is required")
	}
	if r.UsuarioID == 0 {
		return dErrors.New(dErrors.CodeValidation, "usuarioId is required")
	}

	if r.TipoActividadID < 0 {
		return dErrors.New(dErrors.CodeValidation, "tipoActividadId must be positive")
	}
	if r.UsuarioID < 0 {
		return dErrors.New(dErrors.CodeValidation, "usuarioId must be positive")
	}

	return nil
}
