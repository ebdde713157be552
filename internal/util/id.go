package util

import (
	"fmt"
	"math/rand"
	"strings"
)

// IDGenerator produces the mock on-chain identifiers the portal hands out.
// Behind an interface so a real minting backend could replace the mock
// without touching the state machine.
type IDGenerator interface {
	NFTID() string
	ZKProof() string
}

// MockIDGenerator fabricates demo identifiers. Nothing here is
// cryptographic.
type MockIDGenerator struct{}

func (MockIDGenerator) NFTID() string {
	return fmt.Sprintf("NFT-%d", 1000+rand.Intn(9000))
}

func (MockIDGenerator) ZKProof() string {
	return fmt.Sprintf("zk-%s...%s", randBase36(13), randBase36(4))
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}
