package billing

import (
	"fmt"
	"time"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// Préfixes de numérotation par type de document.
func numberPrefix(docType string) string {
	switch docType {
	case entity.DocDevis:
		return "DEV"
	case entity.DocBonLivraison:
		return "BL"
	default:
		return "FACT"
	}
}

// FormatNumber construit le numéro métier d'un document : PREFIX-YYYYMM-NNN.
// seq est le rang du document dans le mois (1-based), tenu par le repository.
// Ex : FormatNumber("facture", juin 2025, 7) -> "FACT-202506-007".
func FormatNumber(docType string, date time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", numberPrefix(docType), date.Format("200601"), seq)
}
