package corrector

// Config holds the ranking weights of the suggester.
type Config struct {
	FreqTemperature float64 `yaml:"freq_temperature" env:"SPELLER_FREQ_TEMPERATURE" env-default:"2.0"`
	BetaWeight      float64 `yaml:"beta_weight"      env:"SPELLER_BETA_WEIGHT"      env-default:"1.0"`
	LambdaPenalty   float64 `yaml:"lambda_penalty"   env:"SPELLER_LAMBDA_PENALTY"   env-default:"0.9"`
	TransposeCost   float64 `yaml:"transpose_cost"   env:"SPELLER_TRANSPOSE_COST"   env-default:"0.6"`
	NeighborInsDel  float64 `yaml:"neighbor_ins_del" env:"SPELLER_NEIGHBOR_INS_DEL" env-default:"0.9"`
	KeyboardNearSub float64 `yaml:"keyboard_near_sub" env:"SPELLER_KEYBOARD_NEAR_SUB" env-default:"0.6"`
}

// DefaultConfig mirrors the env-default tags.
func DefaultConfig() Config {
	return Config{
		FreqTemperature: 2.0,
		BetaWeight:      1.0,
		LambdaPenalty:   0.9,
		TransposeCost:   0.6,
		NeighborInsDel:  0.9,
		KeyboardNearSub: 0.6,
	}
}

type Candidate struct {
	Term  string  `json:"term"`
	Cost  float64 `json:"cost"`
	Score float64 `json:"score"`
	Edits int     `json:"edits"`
}
