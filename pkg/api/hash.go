package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 digest of all channel texts, used to
// spot identical generations in history.
func (g Generated) Hash() string {
	h := blake3.New()
	for _, s := range []string{g.Title, g.News, g.Check, g.Insta, g.Facebook, g.Blog} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
