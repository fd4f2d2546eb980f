package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTranslogFileName(t *testing.T) {
	t.Run("WellFormed", func(t *testing.T) {
		gen, ok := ParseTranslogFileName("translog-42.tlog")
		assert.True(t, ok)
		assert.Equal(t, uint64(42), gen)
	})

	t.Run("RejectsNonMatching", func(t *testing.T) {
		for _, name := range []string{
			"notes.txt",
			"translog-1.ckp",
			"translog-.tlog",
			"translog-1.tlog.bak",
			"xtranslog-1.tlog",
			"translog-1a.tlog",
		} {
			_, ok := ParseTranslogFileName(name)
			assert.False(t, ok, "name %q should not match", name)
		}
	})

	t.Run("OverflowFallsBackToZero", func(t *testing.T) {
		// The digit group matches the pattern but overflows uint64. The file
		// stays a candidate with generation 0; it is never rejected.
		gen, ok := ParseTranslogFileName("translog-99999999999999999999999.tlog")
		assert.True(t, ok)
		assert.Equal(t, uint64(0), gen)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		gen, ok := ParseTranslogFileName(FormatTranslogFileName(7))
		assert.True(t, ok)
		assert.Equal(t, uint64(7), gen)
	})
}

func TestParsePrimaryTermDirName(t *testing.T) {
	term, err := ParsePrimaryTermDirName("12")
	assert.NoError(t, err)
	assert.Equal(t, uint64(12), term)

	for _, name := range []string{"", "abc", "-1", "+2", "1.5", "0x10"} {
		_, err := ParsePrimaryTermDirName(name)
		assert.Error(t, err, "name %q should not parse", name)
	}
}

func TestCheckpointFileNameFor(t *testing.T) {
	assert.Equal(t, "/a/2/translog-10.ckp", CheckpointFileNameFor("/a/2/translog-10.tlog"))
}
