package core

// Hardfork is a totally ordered enumeration of protocol upgrades. Ordering
// matters more than naming: ReleaseSpec derives every feature flag from a
// comparison against a fixed point in this sequence, never from a string or
// a chain-specific block number.
type Hardfork uint8

const (
	Frontier Hardfork = iota
	Homestead
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin
	London
	Paris
	Shanghai
	Cancun
	Prague
	Osaka
)

// IsAtLeast reports whether h occurs at or after other in the hardfork
// sequence.
func (h Hardfork) IsAtLeast(other Hardfork) bool { return h >= other }

func (h Hardfork) String() string {
	switch h {
	case Frontier:
		return "Frontier"
	case Homestead:
		return "Homestead"
	case TangerineWhistle:
		return "TangerineWhistle"
	case SpuriousDragon:
		return "SpuriousDragon"
	case Byzantium:
		return "Byzantium"
	case Constantinople:
		return "Constantinople"
	case Petersburg:
		return "Petersburg"
	case Istanbul:
		return "Istanbul"
	case Berlin:
		return "Berlin"
	case London:
		return "London"
	case Paris:
		return "Paris"
	case Shanghai:
		return "Shanghai"
	case Cancun:
		return "Cancun"
	case Prague:
		return "Prague"
	case Osaka:
		return "Osaka"
	default:
		return "Unknown"
	}
}

// ReleaseSpec is an immutable, purely derived feature-flag record. Every
// consumer in this package branches on these booleans instead of comparing
// Hardfork ordinals directly, so that a new EIP only ever requires a new
// flag here (see the "Config surface" design note).
type ReleaseSpec struct {
	hardfork Hardfork

	eip2028 bool // Istanbul: reduced non-zero calldata byte cost
	eip2929 bool // Berlin: cold/warm access gas
	eip2930 bool // Berlin: optional access lists
	eip3529 bool // London: reduced refunds, divisor 5
	eip3651 bool // Shanghai: warm coinbase
	eip3860 bool // Shanghai: init-code word cost + size limit
	eip2935 bool // Prague: historical block hash contract
	eip7623 bool // Prague: calldata floor gas
	eip7702 bool // Prague: set-code (authorization list) transactions

	blobGasPerBlob    uint64
	maxBlobsPerBlock  uint64
	targetBlobsPerBlock uint64
}

// Override is a functional option used by tests to force a flag independent
// of hardfork ordering. Overrides exist only for test isolation; production
// code should always derive flags from a Hardfork alone.
type Override func(*ReleaseSpec)

// WithEIP3651 forces the coinbase-prewarm flag, ignoring hardfork ordering.
func WithEIP3651(enabled bool) Override {
	return func(s *ReleaseSpec) { s.eip3651 = enabled }
}

// WithEIP7623 forces the calldata-floor-gas flag, ignoring hardfork ordering.
func WithEIP7623(enabled bool) Override {
	return func(s *ReleaseSpec) { s.eip7623 = enabled }
}

// WithEIP3529 forces the refund-divisor flag, ignoring hardfork ordering.
func WithEIP3529(enabled bool) Override {
	return func(s *ReleaseSpec) { s.eip3529 = enabled }
}

const (
	gasPerBlob           = 131072
	defaultMaxBlobsBlock = 6
)

// NewReleaseSpec derives an immutable feature-flag record from a hardfork,
// applying any overrides last so tests can pin individual flags.
func NewReleaseSpec(h Hardfork, overrides ...Override) ReleaseSpec {
	s := ReleaseSpec{
		hardfork:            h,
		eip2028:             h.IsAtLeast(Istanbul),
		eip2929:             h.IsAtLeast(Berlin),
		eip2930:             h.IsAtLeast(Berlin),
		eip3529:             h.IsAtLeast(London),
		eip3651:             h.IsAtLeast(Shanghai),
		eip3860:             h.IsAtLeast(Shanghai),
		eip2935:             h.IsAtLeast(Prague),
		eip7623:             h.IsAtLeast(Prague),
		eip7702:             h.IsAtLeast(Prague),
		blobGasPerBlob:      gasPerBlob,
		maxBlobsPerBlock:    defaultMaxBlobsBlock,
		targetBlobsPerBlock: defaultMaxBlobsBlock / 2,
	}
	for _, o := range overrides {
		o(&s)
	}
	return s
}

// DefaultReleaseSpec is the Prague-activated release used as the default in
// tests throughout this package, unless a test is specifically exercising
// fork-gating behavior.
func DefaultReleaseSpec() ReleaseSpec { return NewReleaseSpec(Prague) }

func (s ReleaseSpec) Hardfork() Hardfork { return s.hardfork }

func (s ReleaseSpec) IsEIP2028Enabled() bool { return s.eip2028 }
func (s ReleaseSpec) IsEIP2929Enabled() bool { return s.eip2929 }
func (s ReleaseSpec) IsEIP2930Enabled() bool { return s.eip2930 }
func (s ReleaseSpec) IsEIP3529Enabled() bool { return s.eip3529 }
func (s ReleaseSpec) IsEIP3651Enabled() bool { return s.eip3651 }
func (s ReleaseSpec) IsEIP3860Enabled() bool { return s.eip3860 }
func (s ReleaseSpec) IsEIP2935Enabled() bool { return s.eip2935 }
func (s ReleaseSpec) IsEIP7623Enabled() bool { return s.eip7623 }
func (s ReleaseSpec) IsEIP7702Enabled() bool { return s.eip7702 }

// RefundDivisor returns the EIP-3529 refund divisor: 5 post-London, 2 before.
func (s ReleaseSpec) RefundDivisor() uint64 {
	if s.eip3529 {
		return 5
	}
	return 2
}

// BlobGasPerBlob returns GAS_PER_BLOB for this release (constant across
// forks in the scope of this pipeline; expressed as a ReleaseSpec field so a
// future fork can override it without touching callers).
func (s ReleaseSpec) BlobGasPerBlob() uint64 { return s.blobGasPerBlob }

// MaxBlobGasPerBlock returns the per-block blob gas ceiling.
func (s ReleaseSpec) MaxBlobGasPerBlock() uint64 {
	return s.maxBlobsPerBlock * s.blobGasPerBlob
}

// FeatureNames lists the active EIP flags by name, for logging and
// debugging; not consulted by any control-flow decision in the pipeline.
func (s ReleaseSpec) FeatureNames() []string {
	var names []string
	add := func(enabled bool, name string) {
		if enabled {
			names = append(names, name)
		}
	}
	add(s.eip2028, "EIP-2028")
	add(s.eip2929, "EIP-2929")
	add(s.eip2930, "EIP-2930")
	add(s.eip3529, "EIP-3529")
	add(s.eip3651, "EIP-3651")
	add(s.eip3860, "EIP-3860")
	add(s.eip2935, "EIP-2935")
	add(s.eip7623, "EIP-7623")
	add(s.eip7702, "EIP-7702")
	return names
}
