package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerated_Hash(t *testing.T) {
	base := Generated{
		Title: "신제품 출시",
		News:  "본문",
		Insta: "post one",
	}

	t.Run("identical generations produce identical hashes", func(t *testing.T) {
		g1 := base
		g2 := base
		assert.Equal(t, g1.Hash(), g2.Hash())
	})

	t.Run("field boundaries are significant", func(t *testing.T) {
		g1 := Generated{Title: "ab", News: "c"}
		g2 := Generated{Title: "a", News: "bc"}
		assert.NotEqual(t, g1.Hash(), g2.Hash())
	})

	t.Run("different content produces different hashes", func(t *testing.T) {
		g := base
		g.Blog = "blog"
		assert.NotEqual(t, base.Hash(), g.Hash())
	})

	t.Run("hex encoded 256-bit digest", func(t *testing.T) {
		assert.Len(t, base.Hash(), 64)
	})
}
