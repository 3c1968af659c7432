// Package billing porte les règles fiscales tunisiennes appliquées aux
// documents de vente : TVA à taux unique 19 %, timbre fiscal fixe par document.
//
// Convention unique dans tout le code : les montants sont manipulés en HT.
// Les prix de vente boutique (et donc les lignes de commande) sont TTC ; la
// conversion TTC -> HT ne se fait qu'à la frontière commande -> facture, via
// HTFromTTC. L'arrondi d'affichage (3 décimales, millimes TND) est appliqué
// uniquement au rendu, jamais pendant le calcul.
package billing

import "github.com/shopspring/decimal"

// Taux de TVA unique (19 %). Pas de variation par article.
var (
	TVARate    = decimal.New(19, -2)  // 0.19
	ttcDivisor = decimal.New(119, -2) // 1.19
)

// DisplayScale décimales des montants sur les documents fiscaux (millimes TND).
const DisplayScale = 3

// Line ligne de calcul : quantité × prix unitaire HT.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPriceHT decimal.Decimal
}

// Total retourne Quantity × UnitPriceHT.
func (l Line) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPriceHT)
}

// Breakdown décomposition standard d'un document :
// TotalTTC = SubtotalHT + TVA + TimbreFiscal, exact en décimal.
type Breakdown struct {
	SubtotalHT   decimal.Decimal
	TVA          decimal.Decimal
	TimbreFiscal decimal.Decimal
	TotalTTC     decimal.Decimal
}

// ComputeFromHT calcule la décomposition fiscale d'une liste de lignes HT.
func ComputeFromHT(lines []Line, timbreFiscal decimal.Decimal) Breakdown {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	tva := subtotal.Mul(TVARate)
	return Breakdown{
		SubtotalHT:   subtotal,
		TVA:          tva,
		TimbreFiscal: timbreFiscal,
		TotalTTC:     subtotal.Add(tva).Add(timbreFiscal),
	}
}

// HTFromTTC reconvertit un prix TTC en HT (division par 1.19).
// Utilisé uniquement à la frontière commande -> facture : les prix stockés
// dans order_items sont TTC, les lignes de facture sont HT.
func HTFromTTC(priceTTC decimal.Decimal) decimal.Decimal {
	return priceTTC.DivRound(ttcDivisor, 12)
}

// TTCFromHT applique la TVA à un prix HT (multiplication par 1.19).
func TTCFromHT(priceHT decimal.Decimal) decimal.Decimal {
	return priceHT.Mul(ttcDivisor)
}
