package porthole

import "encoding/json"

// Geometry of the tube and port. Pressure in bar, lengths in mm.
type Geometry struct {
	PressureBar   float64 `json:"pressure_bar" yaml:"pressure_bar"`
	BoreMM        float64 `json:"bore_mm" yaml:"bore_mm"`
	OuterDiaMM    float64 `json:"outer_dia_mm" yaml:"outer_dia_mm"`
	RodDiaMM      float64 `json:"rod_dia_mm" yaml:"rod_dia_mm"`             // not used by the formulas
	PortHoleDiaMM float64 `json:"port_hole_dia_mm" yaml:"port_hole_dia_mm"` // not used by the formulas
}

// Material strengths in kgf/mm².
type Material struct {
	SutKgfMM2 float64 `json:"sut_kgf_mm2" yaml:"sut_kgf_mm2"`
	SytKgfMM2 float64 `json:"syt_kgf_mm2" yaml:"syt_kgf_mm2"` // not used by the formulas
}

// KFactors are the endurance-limit correction factors.
type KFactors struct {
	Ka float64 `json:"ka" yaml:"ka"` // surface
	Kb float64 `json:"kb" yaml:"kb"` // size
	Kc float64 `json:"kc" yaml:"kc"` // reliability
	Kd float64 `json:"kd" yaml:"kd"` // temperature
	Ke float64 `json:"ke" yaml:"ke"` // stress concentration
	Kh float64 `json:"kh" yaml:"kh"` // surface hardening
	Kl float64 `json:"kl" yaml:"kl"` // load
	Km float64 `json:"km" yaml:"km"` // miscellaneous (plating etc.)
}

type Input struct {
	Geometry Geometry `json:"geometry" yaml:"geometry"`
	Material Material `json:"material" yaml:"material"`
	KFactors KFactors `json:"k_factors" yaml:"k_factors"`
}

// UnmarshalJSON decodes over Defaults, so omitted fields keep their nominal
// values.
func (in *Input) UnmarshalJSON(b []byte) error {
	type plain Input
	p := plain(Defaults())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*in = Input(p)
	return nil
}

// Result holds every derived quantity. Stresses are in kgf/mm².
type Result struct {
	ThicknessMM Value `json:"t_mm"`
	Sh          Value `json:"sh"`
	Sl          Value `json:"sl"`
	Sc          Value `json:"sc"`
	Sa          Value `json:"sa"`
	Sm          Value `json:"sm"`
	Se          Value `json:"se"`
	Sp          Value `json:"sp"`
	Sq          Value `json:"sq"`
	B           Value `json:"b"`
	A           Value `json:"a"`
	StaticFOS   Value `json:"static_fos"`
	FatigueFOS  Value `json:"fatigue_fos"`
	LifeCycles  Value `json:"life_cycles"`
}

// Defaults returns the nominal port hole case.
func Defaults() Input {
	return Input{
		Geometry: Geometry{
			PressureBar:   207,
			BoreMM:        75,
			OuterDiaMM:    87,
			RodDiaMM:      35,
			PortHoleDiaMM: 9,
		},
		Material: Material{
			SutKgfMM2: 60,
			SytKgfMM2: 50,
		},
		KFactors: KFactors{
			Ka: 0.75,
			Kb: 1.00,
			Kc: 0.814,
			Kd: 1.00,
			Ke: 1.00,
			Kh: 1.00,
			Kl: 0.85,
			Km: 1.00,
		},
	}
}

// Calculate evaluates the stress and fatigue chain for in. It never fails:
// quantities that are undefined for the given input are NA, along with
// everything computed from them.
func Calculate(in Input) Result {
	g, m := in.Geometry, in.Material
	p := Of(g.PressureBar)
	D := Of(g.BoreMM)
	Do := Of(g.OuterDiaMM)
	Sut := Of(m.SutKgfMM2)
	hundred := Of(100)
	half := Of(0.5)

	// Wall thickness t = (Do - D) / 2
	t := Mul(Sub(Do, D), half)

	// Hoop: p(t + 0.57D) / 100t
	sh := Div(Mul(p, Add(t, Mul(Of(0.57), D))), Mul(hundred, t))

	// Longitudinal: pD² / 100(Do² - D²)
	sl := Div(Mul(p, Mul(D, D)), Mul(hundred, Sub(Mul(Do, Do), Mul(D, D))))

	// Biaxial von Mises
	sc := Sqrt(Sub(Add(Mul(sh, sh), Mul(sl, sl)), Mul(sh, sl)))

	// Amplitude and mean are both Sc/2.
	sa := Mul(sc, half)
	sm := Mul(sc, half)

	k := in.KFactors
	se := Of(0.5 * k.Ka * k.Kb * k.Kc * k.Kd * k.Ke * k.Kh * k.Kl * k.Km * m.SutKgfMM2)

	one := Of(1)
	// Sp = 1 / (1/Se + Sa/(Sm·Sut))
	sp := Div(one, Add(Div(one, se), Div(sa, Mul(sm, Sut))))
	// Sq = Sm / (1 - Sa/Sut)
	sq := Div(sm, Sub(one, Div(sa, Sut)))

	// Basquin: B = (log Se - log 0.9Sut) / 3, A = Se / 10^(6B)
	b := Div(Sub(Log10(se), Log10(Mul(Of(0.9), Sut))), Of(3))
	a := Div(se, Pow(Of(10), Mul(Of(6), b)))

	return Result{
		ThicknessMM: t,
		Sh:          sh,
		Sl:          sl,
		Sc:          sc,
		Sa:          sa,
		Sm:          sm,
		Se:          se,
		Sp:          sp,
		Sq:          sq,
		B:           b,
		A:           a,
		StaticFOS:   Div(sp, sa),
		FatigueFOS:  Div(sq, sa),
		LifeCycles:  Pow(Div(sq, a), Div(one, b)),
	}
}
