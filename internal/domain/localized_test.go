package domain_test

import (
	"testing"

	"go-careers-cms/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestLocalized(t *testing.T) {
	t.Run("Should require both legs to be complete", func(t *testing.T) {
		assert.True(t, domain.Localized{En: "a", Ar: "b"}.Complete())
		assert.False(t, domain.Localized{En: "a"}.Complete())
		assert.False(t, domain.Localized{}.Complete())
	})

	t.Run("Should pick the requested language with English fallback", func(t *testing.T) {
		l := domain.Localized{En: "Engineering", Ar: "الهندسة"}
		assert.Equal(t, "الهندسة", l.Pick("ar"))
		assert.Equal(t, "Engineering", l.Pick("en"))
		assert.Equal(t, "Engineering", l.Pick("fr"))
	})
}

func TestSplitLines(t *testing.T) {
	t.Run("Should split on newlines and drop blanks", func(t *testing.T) {
		got := domain.SplitLines("first\n\n  second  \r\nthird\n")
		assert.Equal(t, []string{"first", "second", "third"}, got)
	})

	t.Run("Should return nil for empty input", func(t *testing.T) {
		assert.Nil(t, domain.SplitLines(""))
		assert.Nil(t, domain.SplitLines("\n\n"))
	})
}

func TestHasRole(t *testing.T) {
	assert.True(t, domain.HasRole(domain.RoleAdmin, domain.RoleAdmin, domain.RoleHR))
	assert.True(t, domain.HasRole(domain.RoleHR, domain.RoleAdmin, domain.RoleHR))
	assert.False(t, domain.HasRole(domain.RoleUser, domain.RoleAdmin, domain.RoleHR))
	assert.False(t, domain.HasRole("", domain.RoleAdmin))
}
