// Package present turns calculator results into labelled, formatted output:
// cards for the UI and reports, the formula list, and the dependency diagram.
package present

import (
	"strconv"

	"Porthole/internal/calc/porthole"
)

// Placeholder is shown in place of a value that is not available.
const Placeholder = "—"

// Card is one labelled output value.
type Card struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
	Hint  string `json:"hint,omitempty"`
	Major bool   `json:"major"`
}

// Format renders v with a fixed number of decimals.
func Format(v porthole.Value, decimals int) string {
	x, ok := v.Float()
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

// Cards lists the outputs in display order: intermediate stresses first,
// then the factors of safety and life.
func Cards(r porthole.Result) []Card {
	return []Card{
		{Key: "sh", Label: "Hoop stress Sh (kgf/mm²)", Text: Format(r.Sh, 2)},
		{Key: "sl", Label: "Longitudinal stress Sl (kgf/mm²)", Text: Format(r.Sl, 2)},
		{Key: "sc", Label: "Combined stress Sc (kgf/mm²)", Text: Format(r.Sc, 2)},
		{Key: "sa", Label: "Stress amplitude Sa (kgf/mm²)", Text: Format(r.Sa, 2)},
		{Key: "sm", Label: "Stress mean Sm (kgf/mm²)", Text: Format(r.Sm, 2)},
		{Key: "se", Label: "Endurance limit Se (kgf/mm²)", Text: Format(r.Se, 2)},
		{Key: "static_fos", Label: "Static FOS", Text: Format(r.StaticFOS, 2), Hint: "Static FOS = Sp / Sa", Major: true},
		{Key: "fatigue_fos", Label: "Fatigue FOS", Text: Format(r.FatigueFOS, 2), Hint: "Fatigue FOS = Sq / Sa", Major: true},
		{Key: "life_cycles", Label: "Life Cycles N", Text: Format(r.LifeCycles, 0), Hint: "N = (Sq / A)^(1/B)", Major: true},
	}
}

// Formulae lists the relations as implemented, in evaluation order.
func Formulae() []string {
	return []string{
		"t = (Do - D) / 2",
		"Sh = p (t + 0.57 D) / (100 t)",
		"Sl = p D² / (100 (Do² - D²))",
		"Sc = √(Sh² + Sl² - Sh Sl)",
		"Sa = Sm = Sc / 2",
		"Se = 0.5 ka kb kc kd ke kh kl km Sut",
		"Sp = 1 / (1/Se + Sa / (Sm Sut))",
		"Sq = Sm / (1 - Sa / Sut)",
		"B = (log10 Se - log10 0.9 Sut) / 3",
		"A = Se / 10^(6B)",
		"Static FOS = Sp / Sa",
		"Fatigue FOS = Sq / Sa",
		"N = (Sq / A)^(1/B)",
	}
}
