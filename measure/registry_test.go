package measure

import (
	"testing"

	"github.com/longbridgeapp/assert"
)

func TestRegistry_RegisterDouble(t *testing.T) {
	r := NewRegistry()

	h := r.RegisterDouble("latency", "ms", "request latency")
	assert.True(t, IDValid(h))
	assert.Equal(t, Double, IDToType(h))
	assert.Equal(t, uint64(0), IDToIndex(h))

	got, err := r.DescriptorByName("latency")
	assert.Nil(t, err)
	assert.Equal(t, Descriptor{Name: "latency", Unit: "ms", Description: "request latency", Type: Double}, got)
}

func TestRegistry_RegisterInt(t *testing.T) {
	r := NewRegistry()

	h := r.RegisterInt("requests", "1", "request count")
	assert.True(t, IDValid(h))
	assert.Equal(t, Int64, IDToType(h))
}

func TestRegistry_RegisterIsIdempotentByName(t *testing.T) {
	r := NewRegistry()

	h1 := r.RegisterDouble("latency", "ms", "request latency")
	h2 := r.RegisterDouble("latency", "ms", "request latency")
	assert.Equal(t, h1, h2)
}

func TestRegistry_TypeConflictReturnsInvalidHandle(t *testing.T) {
	r := NewRegistry()

	first := r.RegisterDouble("x", "", "")
	second := r.RegisterInt("x", "", "")
	assert.True(t, IDValid(first))
	assert.False(t, IDValid(second))
}

func TestRegistry_DescriptorByNameNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.DescriptorByName("missing")
	assert.NotNil(t, err)
}

func TestRegistry_RegisterEmptyNameReturnsInvalidHandle(t *testing.T) {
	r := NewRegistry()

	h := r.RegisterDouble("", "ms", "")
	assert.False(t, IDValid(h))
}

func TestRegistry_DescriptorByNameEmptyReturnsError(t *testing.T) {
	r := NewRegistry()

	_, err := r.DescriptorByName("")
	assert.NotNil(t, err)
}

func TestRegistry_ByNameWrongTypeReturnsInvalid(t *testing.T) {
	r := NewRegistry()
	r.RegisterDouble("latency", "ms", "")

	h := r.IntByName("latency")
	assert.False(t, IDValid(h))
}

func TestRegistry_ByNameUnknownReturnsInvalid(t *testing.T) {
	r := NewRegistry()

	assert.False(t, IDValid(r.DoubleByName("nope")))
	assert.False(t, IDValid(r.IntByName("nope")))
}

func TestRegistry_DescriptorOfInvalidHandleReturnsDefault(t *testing.T) {
	r := NewRegistry()

	d := r.Descriptor(Handle(0))
	assert.Equal(t, Descriptor{}, d)
}

func TestRegistry_IndicesAreSequentialAndNeverReused(t *testing.T) {
	r := NewRegistry()

	a := r.RegisterDouble("a", "", "")
	b := r.RegisterInt("b", "", "")
	c := r.RegisterDouble("c", "", "")

	assert.Equal(t, uint64(0), IDToIndex(a))
	assert.Equal(t, uint64(1), IDToIndex(b))
	assert.Equal(t, uint64(2), IDToIndex(c))
}

func TestRegistry_ConcurrentRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})

	go func() {
		for i := 0; i < 100; i++ {
			r.RegisterDouble("shared", "", "")
		}

		close(done)
	}()

	for i := 0; i < 100; i++ {
		_ = r.DoubleByName("shared")
	}

	<-done
}
