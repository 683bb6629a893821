package habilitados

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"Active":         StatusEnabled,
		" active ":       StatusEnabled,
		"ACTIVE":         StatusEnabled,
		"Habilitado":     StatusEnabled,
		"VIGENTE":        StatusEnabled,
		"No Habilitado":  StatusDisabled,
		"no  habilitado": StatusDisabled,
		"Inhabilitado":   StatusDisabled,
		"Pendiente":      StatusPending,
		"En Trámite":     StatusPending,
		"Vencido":        StatusExpired,
		"xyz":            StatusUnknown,
		"":               StatusUnknown,
	} {
		require.Equal(t, want, NormalizeStatus(raw), "raw: %q", raw)
	}
}

func TestStatusCaseVariantsAgree(t *testing.T) {
	variants := []string{"Active", " active ", "ACTIVE"}
	for _, v := range variants {
		require.Equal(t, NormalizeStatus(variants[0]), NormalizeStatus(v))
	}
}
