package porthole

import (
	"math"
	"reflect"
	"testing"
)

func assertRel(t *testing.T, name string, got Value, want float64) {
	t.Helper()
	v, ok := got.Float()
	if !ok {
		t.Errorf("%s = NA, want %.9g", name, want)
		return
	}
	if math.Abs(v-want) > 1e-6*math.Abs(want) {
		t.Errorf("%s = %.12g, want %.12g (rel tol 1e-6)", name, v, want)
	}
}

func assertNA(t *testing.T, name string, got Value) {
	t.Helper()
	if got.Defined() {
		t.Errorf("%s = %v, want NA", name, got.Or(0))
	}
}

func assertDefined(t *testing.T, name string, got Value) {
	t.Helper()
	if !got.Defined() {
		t.Errorf("%s = NA, want a number", name)
	}
}

func TestCalculate_Nominal(t *testing.T) {
	r := Calculate(Defaults())

	assertRel(t, "t", r.ThicknessMM, 6.0)
	assertRel(t, "Sh", r.Sh, 16.81875)
	assertRel(t, "Sl", r.Sl, 5.989583333333333)
	assertRel(t, "Sc", r.Sc, 14.765099233731698)
	assertRel(t, "Sa", r.Sa, 7.382549616865849)
	assertRel(t, "Sm", r.Sm, 7.382549616865849)
	assertRel(t, "Se", r.Se, 15.56775)
	assertRel(t, "Sp", r.Sp, 12.360630030667844)
	assertRel(t, "Sq", r.Sq, 8.418366412408568)
	assertRel(t, "B", r.B, -0.1800559703693708)
	assertRel(t, "A", r.A, 187.31030495736402)
	assertRel(t, "static_fos", r.StaticFOS, 1.6743036853324074)
	assertRel(t, "fatigue_fos", r.FatigueFOS, 1.140306106873476)
	assertRel(t, "life_cycles", r.LifeCycles, 30399137.756610587)
}

// The chain re-derived step by step from the nominal inputs.
func TestCalculate_MatchesFormulaChain(t *testing.T) {
	in := Defaults()
	in.Geometry.PressureBar = 180
	in.Geometry.BoreMM = 63
	in.Geometry.OuterDiaMM = 76
	in.Material.SutKgfMM2 = 55
	in.KFactors.Kh = 1.4

	p, D, Do, Sut := 180.0, 63.0, 76.0, 55.0
	k := in.KFactors
	th := (Do - D) / 2
	sh := p * (th + 0.57*D) / (100 * th)
	sl := p * D * D / (100 * (Do*Do - D*D))
	sc := math.Sqrt(sh*sh + sl*sl - sh*sl)
	sa, sm := sc/2, sc/2
	se := 0.5 * k.Ka * k.Kb * k.Kc * k.Kd * k.Ke * k.Kh * k.Kl * k.Km * Sut
	sp := 1 / (1/se + sa/(sm*Sut))
	sq := sm / (1 - sa/Sut)
	b := (math.Log10(se) - math.Log10(0.9*Sut)) / 3
	a := se / math.Pow(10, 6*b)

	r := Calculate(in)
	assertRel(t, "t", r.ThicknessMM, th)
	assertRel(t, "Sh", r.Sh, sh)
	assertRel(t, "Sl", r.Sl, sl)
	assertRel(t, "Sc", r.Sc, sc)
	assertRel(t, "Sa", r.Sa, sa)
	assertRel(t, "Se", r.Se, se)
	assertRel(t, "Sp", r.Sp, sp)
	assertRel(t, "Sq", r.Sq, sq)
	assertRel(t, "B", r.B, b)
	assertRel(t, "A", r.A, a)
	assertRel(t, "static_fos", r.StaticFOS, sp/sa)
	assertRel(t, "fatigue_fos", r.FatigueFOS, sq/sa)
	assertRel(t, "life_cycles", r.LifeCycles, math.Pow(sq/a, 1/b))
}

func TestCalculate_ZeroWall(t *testing.T) {
	in := Defaults()
	in.Geometry.OuterDiaMM = in.Geometry.BoreMM

	r := Calculate(in)

	if v, ok := r.ThicknessMM.Float(); !ok || v != 0 {
		t.Errorf("t = %v (defined=%v), want 0", v, ok)
	}
	for name, v := range map[string]Value{
		"Sh": r.Sh, "Sc": r.Sc, "Sa": r.Sa, "Sm": r.Sm, "Sp": r.Sp, "Sq": r.Sq,
		"static_fos": r.StaticFOS, "fatigue_fos": r.FatigueFOS, "life_cycles": r.LifeCycles,
	} {
		assertNA(t, name, v)
	}
	// Do² - D² is zero as well.
	assertNA(t, "Sl", r.Sl)

	assertDefined(t, "Se", r.Se)
	assertDefined(t, "B", r.B)
	assertDefined(t, "A", r.A)
}

func TestCalculate_ZeroDiameters(t *testing.T) {
	in := Defaults()
	in.Geometry.OuterDiaMM = 0
	in.Geometry.BoreMM = 0

	r := Calculate(in)
	assertNA(t, "Sl", r.Sl)
	assertNA(t, "Sh", r.Sh)
	assertDefined(t, "Se", r.Se)
}

func TestCalculate_SaEqualsSut(t *testing.T) {
	in := Defaults()
	sa, ok := Calculate(in).Sa.Float()
	if !ok {
		t.Fatal("nominal Sa is NA")
	}
	in.Material.SutKgfMM2 = sa

	r := Calculate(in)
	assertDefined(t, "Sa", r.Sa)
	assertNA(t, "Sq", r.Sq)
	assertNA(t, "fatigue_fos", r.FatigueFOS)
	assertNA(t, "life_cycles", r.LifeCycles)
	assertDefined(t, "Sp", r.Sp)
	assertDefined(t, "static_fos", r.StaticFOS)
}

func TestCalculate_ZeroStrength(t *testing.T) {
	in := Defaults()
	in.Material.SutKgfMM2 = 0

	r := Calculate(in)
	assertDefined(t, "Sh", r.Sh)
	assertDefined(t, "Sc", r.Sc)
	if v, ok := r.Se.Float(); !ok || v != 0 {
		t.Errorf("Se = %v (defined=%v), want 0", v, ok)
	}
	for name, v := range map[string]Value{
		"Sp": r.Sp, "Sq": r.Sq, "B": r.B, "A": r.A,
		"static_fos": r.StaticFOS, "fatigue_fos": r.FatigueFOS, "life_cycles": r.LifeCycles,
	} {
		assertNA(t, name, v)
	}
}

func TestCalculate_ZeroKFactors(t *testing.T) {
	in := Defaults()
	in.KFactors = KFactors{}

	r := Calculate(in)
	assertNA(t, "Sp", r.Sp)
	assertNA(t, "static_fos", r.StaticFOS)
	assertNA(t, "B", r.B)
	assertNA(t, "A", r.A)
	assertNA(t, "life_cycles", r.LifeCycles)
	assertDefined(t, "Sq", r.Sq)
	assertDefined(t, "fatigue_fos", r.FatigueFOS)
}

func TestCalculate_NegativeLifeBase(t *testing.T) {
	in := Defaults()
	// Sa ≈ 7.38 exceeds Sut, so Sq turns negative while B stays defined.
	in.Material.SutKgfMM2 = 5

	r := Calculate(in)
	if v, ok := r.Sq.Float(); !ok || v >= 0 {
		t.Fatalf("Sq = %v (defined=%v), want negative", v, ok)
	}
	assertDefined(t, "B", r.B)
	assertDefined(t, "A", r.A)
	assertNA(t, "life_cycles", r.LifeCycles)
}

func TestCalculate_Pathological(t *testing.T) {
	cases := []Input{
		{},
		{Geometry: Geometry{PressureBar: -10, BoreMM: 90, OuterDiaMM: 80}},
		{Geometry: Geometry{BoreMM: -5, OuterDiaMM: 5}, Material: Material{SutKgfMM2: -60}},
		{Geometry: Geometry{PressureBar: 1e308, BoreMM: 1e308, OuterDiaMM: -1e308}},
	}
	for i, in := range cases {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					t.Errorf("case %d panicked: %v", i, rec)
				}
			}()
			r := Calculate(in)
			for _, v := range []Value{r.ThicknessMM, r.Sh, r.Sl, r.Sc, r.Sa, r.Sm, r.Se,
				r.Sp, r.Sq, r.B, r.A, r.StaticFOS, r.FatigueFOS, r.LifeCycles} {
				if x, ok := v.Float(); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
					t.Errorf("case %d: defined value is not finite: %v", i, x)
				}
			}
		}()
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := Defaults()
	if a, b := Calculate(in), Calculate(in); !reflect.DeepEqual(a, b) {
		t.Errorf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestCalculate_PressureMonotonic(t *testing.T) {
	in := Defaults()
	prev := Calculate(in)
	for p := 220.0; p <= 400; p += 20 {
		in.Geometry.PressureBar = p
		cur := Calculate(in)
		if cur.Sh.Or(0) <= prev.Sh.Or(0) {
			t.Errorf("p=%v: Sh %v not above %v", p, cur.Sh.Or(0), prev.Sh.Or(0))
		}
		if cur.Sl.Or(0) <= prev.Sl.Or(0) {
			t.Errorf("p=%v: Sl %v not above %v", p, cur.Sl.Or(0), prev.Sl.Or(0))
		}
		if cur.Sc.Or(0) <= prev.Sc.Or(0) {
			t.Errorf("p=%v: Sc %v not above %v", p, cur.Sc.Or(0), prev.Sc.Or(0))
		}
		prev = cur
	}
}

func TestCalculate_UnusedInputsIgnored(t *testing.T) {
	a := Defaults()
	b := Defaults()
	b.Geometry.RodDiaMM = 99
	b.Geometry.PortHoleDiaMM = 1
	b.Material.SytKgfMM2 = 1
	if !reflect.DeepEqual(Calculate(a), Calculate(b)) {
		t.Error("rod, port hole and yield inputs changed the result")
	}
}
