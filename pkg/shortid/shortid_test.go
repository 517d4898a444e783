package shortid_test

import (
	"strings"
	"testing"

	"go-careers-cms/pkg/shortid"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("Should produce IDs of the default length", func(t *testing.T) {
		id := shortid.New()
		assert.Len(t, id, shortid.DefaultLength)
	})

	t.Run("Should only use lowercase alphanumerics", func(t *testing.T) {
		const alphabet = "1234567890abcdefghijklmnopqrstuvwxyz"
		for i := 0; i < 50; i++ {
			for _, r := range shortid.New() {
				assert.True(t, strings.ContainsRune(alphabet, r))
			}
		}
	})

	t.Run("Should honor a custom length", func(t *testing.T) {
		assert.Len(t, shortid.NewWithLength(8), 8)
	})

	t.Run("Should not collide over a small sample", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := shortid.NewWithLength(12)
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}
