package gethvm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"

	"github.com/ethexec/txcore/core"
)

// chainConfig builds a go-ethereum params.ChainConfig that activates every
// fork up to and including spec's hardfork, and nothing after. The pipeline
// has no notion of a chain history, only "which release is active", so every
// activated fork is pinned at genesis (block/time zero) and every
// unactivated one is left nil.
func chainConfig(spec core.ReleaseSpec) *params.ChainConfig {
	h := spec.Hardfork()
	zero := big.NewInt(0)

	blockFork := func(min core.Hardfork) *big.Int {
		if h.IsAtLeast(min) {
			return zero
		}
		return nil
	}
	timeFork := func(min core.Hardfork) *uint64 {
		if h.IsAtLeast(min) {
			t := uint64(0)
			return &t
		}
		return nil
	}

	cfg := &params.ChainConfig{
		ChainID:             big.NewInt(1),
		HomesteadBlock:      blockFork(core.Homestead),
		EIP150Block:         blockFork(core.TangerineWhistle),
		EIP155Block:         blockFork(core.SpuriousDragon),
		EIP158Block:         blockFork(core.SpuriousDragon),
		ByzantiumBlock:      blockFork(core.Byzantium),
		ConstantinopleBlock: blockFork(core.Constantinople),
		PetersburgBlock:     blockFork(core.Petersburg),
		IstanbulBlock:       blockFork(core.Istanbul),
		BerlinBlock:         blockFork(core.Berlin),
		LondonBlock:         blockFork(core.London),
		ShanghaiTime:        timeFork(core.Shanghai),
		CancunTime:          timeFork(core.Cancun),
		PragueTime:          timeFork(core.Prague),
		OsakaTime:           timeFork(core.Osaka),
	}
	if h.IsAtLeast(core.Paris) {
		cfg.TerminalTotalDifficulty = zero
	}
	return cfg
}
