package formats

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSlotTiming(t *testing.T, timing string) (int, int) {
	t.Helper()
	parts := strings.Split(strings.TrimSuffix(timing, "s"), "-")
	require.Len(t, parts, 2, "timing %q", timing)
	start, err := strconv.Atoi(parts[0])
	require.NoError(t, err)
	end, err := strconv.Atoi(parts[1])
	require.NoError(t, err)
	return start, end
}

func TestCatalogIntegrity(t *testing.T) {
	hookRoles := map[string]bool{"hook": true, "hook_text": true, "text_hook": true}
	ctaRoles := map[string]bool{"cta": true, "text_cta": true, "end_card": true}

	for _, key := range Keys() {
		f, err := Lookup(key)
		require.NoError(t, err)

		assert.Equal(t, key, f.Key)
		assert.NotEmpty(t, f.Label, "%s label", key)
		assert.NotEmpty(t, f.HookTemplates, "%s hooks", key)
		assert.NotEmpty(t, f.CTATemplates, "%s ctas", key)
		assert.NotEmpty(t, f.SoundMood, "%s sound mood", key)
		require.NotEmpty(t, f.Structure, "%s structure", key)

		assert.True(t, hookRoles[f.Structure[0].Role],
			"%s should open with a hook role, got %s", key, f.Structure[0].Role)
		last := f.Structure[len(f.Structure)-1]
		assert.True(t, ctaRoles[last.Role],
			"%s should close with a CTA role, got %s", key, last.Role)

		prevEnd := 0
		for _, slot := range f.Structure {
			start, end := parseSlotTiming(t, slot.Timing)
			assert.Equal(t, prevEnd, start, "%s slot %s should start where the previous ended", key, slot.Timing)
			assert.Greater(t, end, start, "%s slot %s", key, slot.Timing)
			assert.NotEmpty(t, slot.Role, "%s slot %s role", key, slot.Timing)
			assert.NotEmpty(t, slot.Direction, "%s slot %s direction", key, slot.Timing)
			prevEnd = end
		}
	}
}

func TestDurationSec(t *testing.T) {
	f, err := Lookup("hot_take")
	require.NoError(t, err)
	assert.Equal(t, 55, f.DurationSec())

	snap, err := Lookup("hot_take_snap")
	require.NoError(t, err)
	assert.Equal(t, 16, snap.DurationSec())

	assert.Equal(t, 60, Format{}.DurationSec())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("interpretive_dance")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
	assert.Contains(t, keys, "hot_take")
	assert.Contains(t, keys, "this_or_that")
}
