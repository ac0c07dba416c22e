package sla

// Mode discriminates the GuaranteeSource variants.
type Mode int

const (
	ModeMeasurement Mode = iota
	ModeLegacy
	ModeStructured
)

func (m Mode) String() string {
	switch m {
	case ModeMeasurement:
		return "measurement"
	case ModeLegacy:
		return "legacy"
	case ModeStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// GuaranteeSource is one guarantee as written in the document. The concrete
// type is one of Measurement, Legacy, or Structured.
type GuaranteeSource interface {
	Mode() Mode
	isGuarantee()
}

// Measurement is a guarantee expressed in the free-form expression language.
type Measurement struct {
	Expression string
	Period     string
}

func (Measurement) Mode() Mode { return ModeMeasurement }
func (Measurement) isGuarantee() {}

// Legacy is a guarantee carrying a single duration limit.
type Legacy struct {
	Limit string
}

func (Legacy) Mode() Mode   { return ModeLegacy }
func (Legacy) isGuarantee() {}

// Structured is a guarantee with explicit metric, operator, value, and
// optional ISO-8601 period. It is the only variant that can become an alert.
type Structured struct {
	Metric   string
	Operator string
	Value    string
	Period   string
}

func (Structured) Mode() Mode   { return ModeStructured }
func (Structured) isGuarantee() {}
