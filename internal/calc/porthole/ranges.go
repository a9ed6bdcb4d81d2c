package porthole

// Range is the practical span offered for a K-factor control. Calculate does
// not enforce it.
type Range struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

func Ranges() []Range {
	return []Range{
		{Key: "ka", Label: "Surface factor ka", Min: 0, Max: 1, Step: 0.001},
		{Key: "kb", Label: "Size factor kb", Min: 0, Max: 1, Step: 0.001},
		{Key: "kc", Label: "Reliability factor kc", Min: 0, Max: 1, Step: 0.001},
		{Key: "kd", Label: "Temperature factor kd", Min: 0, Max: 1, Step: 0.001},
		{Key: "ke", Label: "Stress concentration factor ke", Min: 0, Max: 1, Step: 0.001},
		{Key: "kh", Label: "Surface hardening factor kh", Min: 0, Max: 2, Step: 0.001},
		{Key: "kl", Label: "Load factor kl", Min: 0, Max: 1, Step: 0.001},
		{Key: "km", Label: "Misc factor km (plating etc.)", Min: 0, Max: 1, Step: 0.001},
	}
}
