package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "correlativos/pkg/domain-errors"
)

func TestAllocateRequestNormalize(t *testing.T) {
	t.Run("fills user from session when payload omits it", func(t *testing.T) {
		req := &AllocateRequest{TipoActividadID: 3}
		req.Normalize(42)
		assert.Equal(t, int64(42), req.UsuarioID)
	})

	t.Run("payload user wins over session", func(t *testing.T) {
		req := &AllocateRequest{TipoActividadID: 3, UsuarioID: 7}
		req.Normalize(42)
		assert.Equal(t, int64(7), req.UsuarioID)
	})
}

func TestAllocateRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  *AllocateRequest
		want dErrors.Code
	}{
		{"nil request", nil, dErrors.CodeBadRequest},
		{"missing tipoActividadId", &AllocateRequest{UsuarioID: 1}, dErrors.CodeValidation},
		{"missing usuarioId", &AllocateRequest{TipoActividadID: 3}, dErrors.CodeValidation},
		{"negative tipoActividadId", &AllocateRequest{TipoActividadID: -3, UsuarioID: 1}, dErrors.CodeValidation},
		{"negative usuarioId", &AllocateRequest{TipoActividadID: 3, UsuarioID: -1}, dErrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tc.want), "got %v", err)
		})
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := &AllocateRequest{TipoActividadID: 3, UsuarioID: 1}
		require.NoError(t, req.Validate())
	})
}
