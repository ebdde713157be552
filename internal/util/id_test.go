package util

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockIDGenerator_NFTID(t *testing.T) {
	gen := MockIDGenerator{}
	pattern := regexp.MustCompile(`^NFT-(\d{4})$`)

	for i := 0; i < 100; i++ {
		id := gen.NFTID()
		m := pattern.FindStringSubmatch(id)
		require.NotNil(t, m, "unexpected id %q", id)
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestMockIDGenerator_ZKProof(t *testing.T) {
	gen := MockIDGenerator{}
	pattern := regexp.MustCompile(`^zk-[0-9a-z]{13}\.\.\.[0-9a-z]{4}$`)

	proof := gen.ZKProof()
	assert.Regexp(t, pattern, proof)
	assert.True(t, strings.HasPrefix(proof, "zk-"))
}
