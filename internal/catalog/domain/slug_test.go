package domain_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// ---- SanitizeName ----------------------------------------------------------

func TestSanitizeName_StripsTags(t *testing.T) {
	assert.Equal(t, "Clean Bandit Café!!", domain.SanitizeName("<strong>Clean Bandit Café!!</strong>"))
}

func TestSanitizeName_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Corner Deli", domain.SanitizeName("   Corner Deli  "))
}

func TestSanitizeName_EmptyFallsBack(t *testing.T) {
	assert.Equal(t, domain.DefaultStoreName, domain.SanitizeName(""))
	assert.Equal(t, domain.DefaultStoreName, domain.SanitizeName("   "))
	assert.Equal(t, domain.DefaultStoreName, domain.SanitizeName("<script>alert(1)</script>"))
	assert.Equal(t, domain.DefaultStoreName, domain.SanitizeName("<b></b>"))
}

func TestSanitizeName_KeepsAmpersand(t *testing.T) {
	assert.Equal(t, "Fish & Chips", domain.SanitizeName("Fish & Chips"))
}

// ---- MakeSlug --------------------------------------------------------------

func TestMakeSlug_Derivation(t *testing.T) {
	assert.Equal(t, "clean-bandit-cafe", domain.MakeSlug("Clean Bandit Café!!"))
}

func TestMakeSlug_CollapsesPunctuationRuns(t *testing.T) {
	assert.Equal(t, "rocky-mountains", domain.MakeSlug("Rocky  ... Mountains!"))
}

// ---- SlugPattern -----------------------------------------------------------

func TestSlugPattern_MatchesBaseAndNumbered(t *testing.T) {
	re, err := regexp.Compile("(?i)" + domain.SlugPattern("clean-bandit-cafe"))
	require.NoError(t, err)

	assert.True(t, re.MatchString("clean-bandit-cafe"))
	assert.True(t, re.MatchString("clean-bandit-cafe-2"))
	assert.True(t, re.MatchString("Clean-Bandit-Cafe-10"))
	assert.False(t, re.MatchString("clean-bandit-cafeteria"))
	assert.False(t, re.MatchString("clean-bandit-cafe-two"))
}

func TestSlugPattern_EscapesMetaCharacters(t *testing.T) {
	_, err := regexp.Compile(domain.SlugPattern("c++-shop"))
	require.NoError(t, err)
}

// ---- NextSlug --------------------------------------------------------------

func TestNextSlug_NoCollision(t *testing.T) {
	assert.Equal(t, "clean-bandit-cafe", domain.NextSlug("clean-bandit-cafe", nil))
}

func TestNextSlug_OneCollision(t *testing.T) {
	got := domain.NextSlug("clean-bandit-cafe", []string{"clean-bandit-cafe"})
	assert.Equal(t, "clean-bandit-cafe-2", got)
}

func TestNextSlug_CountsMatchesNotMaxSuffix(t *testing.T) {
	// Count-based numbering: three live matches yield suffix 4 regardless
	// of which numbers the existing slugs carry.
	got := domain.NextSlug("cafe", []string{"cafe", "cafe-2", "cafe-3"})
	assert.Equal(t, "cafe-4", got)
}
