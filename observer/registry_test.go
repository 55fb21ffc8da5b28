package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndFire(t *testing.T) {
	r := New()
	var got any
	r.Register("iso", func(v any) { got = v })

	r.Fire("iso", 800)
	assert.Equal(t, 800, got)
}

func TestRegistry_IdsAreUniqueAcrossTopics(t *testing.T) {
	r := New()
	id1 := r.Register("iso", func(any) {})
	id2 := r.Register("aperture", func(any) {})
	assert.NotEqual(t, id1, id2)
}

func TestRegistry_UnregisterSweepsAllTopics(t *testing.T) {
	r := New()
	calls := 0
	id := r.Register("iso", func(any) { calls++ })
	r.Register("aperture", func(any) { calls++ })

	r.Unregister(id)
	r.Fire("iso", nil)
	r.Fire("aperture", nil)

	assert.Equal(t, 1, calls)
}

func TestRegistry_UnregisterUnknownIDIsNoOp(t *testing.T) {
	r := New()
	r.Unregister(ID(9999))
}

func TestFireTopics_OnlyFiresChangedTopics(t *testing.T) {
	r := New()
	var fired []string
	r.Register("iso", func(any) { fired = append(fired, "iso") })
	r.Register("aperture", func(any) { fired = append(fired, "aperture") })

	FireTopics(r, []string{"iso", "aperture"}, func(topic string) bool {
		return topic == "aperture"
	}, func(topic string) any { return nil })

	assert.Equal(t, []string{"aperture"}, fired)
}
