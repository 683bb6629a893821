package habilitados

import "habilitados-backend/lib/textutil"

// Status is the controlled vocabulary every portal's status column is
// folded into. portals disagree wildly on wording (and language), so
// anything unrecognized is kept as UNKNOWN instead of failing the row.
type Status string

const (
	StatusEnabled  Status = "ENABLED"
	StatusDisabled Status = "DISABLED"
	StatusPending  Status = "PENDING"
	StatusExpired  Status = "EXPIRED"
	StatusUnknown  Status = "UNKNOWN"
)

var statusSynonyms = map[string]Status{
	"habilitado":    StatusEnabled,
	"habilitada":    StatusEnabled,
	"vigente":       StatusEnabled,
	"activo":        StatusEnabled,
	"activa":        StatusEnabled,
	"active":        StatusEnabled,
	"enabled":       StatusEnabled,
	"apto":          StatusEnabled,
	"no habilitado": StatusDisabled,
	"no habilitada": StatusDisabled,
	"inhabilitado":  StatusDisabled,
	"inactivo":      StatusDisabled,
	"inactive":      StatusDisabled,
	"disabled":      StatusDisabled,
	"rechazado":     StatusDisabled,
	"no apto":       StatusDisabled,
	"pendiente":     StatusPending,
	"en tramite":    StatusPending,
	"en trámite":    StatusPending,
	"pending":       StatusPending,
	"observado":     StatusPending,
	"vencido":       StatusExpired,
	"vencida":       StatusExpired,
	"expirado":      StatusExpired,
	"expired":       StatusExpired,
}

func NormalizeStatus(raw string) Status {
	status, ok := statusSynonyms[textutil.NormalizeSpace(raw)]
	if !ok {
		return StatusUnknown
	}
	return status
}
