package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticLocator(t *testing.T) {
	l := NewStaticLocator()

	c, ok := l.Locate("  Andheri West, MUMBAI ")
	require.True(t, ok)
	assert.Equal(t, Coordinates{19.0760, 72.8777}, c)

	blr, ok := l.Locate("Bengaluru")
	require.True(t, ok)
	alias, _ := l.Locate("bangalore city")
	assert.Equal(t, blr, alias)

	_, ok = l.Locate("Atlantis")
	assert.False(t, ok)
	_, ok = l.Locate("")
	assert.False(t, ok)
}

func TestFallbackLocator_DeterministicInBox(t *testing.T) {
	a := NewFallbackLocator(NewStaticLocator(), rand.New(rand.NewSource(42)))
	b := NewFallbackLocator(NewStaticLocator(), rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		ca, ok := a.Locate("nowhere")
		require.True(t, ok)
		cb, _ := b.Locate("nowhere")
		assert.Equal(t, ca, cb, "same seed must give same points")

		assert.GreaterOrEqual(t, ca.Latitude, 20.0)
		assert.Less(t, ca.Latitude, 30.0)
		assert.GreaterOrEqual(t, ca.Longitude, 72.0)
		assert.Less(t, ca.Longitude, 87.0)
	}

	pune, ok := a.Locate("Pune")
	require.True(t, ok)
	assert.Equal(t, Coordinates{18.5204, 73.8567}, pune)
}

func TestCoordinatesKey(t *testing.T) {
	assert.Equal(t, "19.0760,72.8777", Coordinates{19.076, 72.8777}.Key())
	assert.Equal(t, Coordinates{1.00001, 2}.Key(), Coordinates{1.00004, 2.00002}.Key())
	assert.NotEqual(t, Coordinates{1.0001, 2}.Key(), Coordinates{1.0002, 2}.Key())
}

func TestGroup(t *testing.T) {
	mumbai := Coordinates{19.0760, 72.8777}
	delhi := Coordinates{28.7041, 77.1025}
	points := []Point[string]{
		{Coordinates: mumbai, Item: "a"},
		{Coordinates: delhi, Item: "b"},
		{Coordinates: Coordinates{19.07601, 72.87769}, Item: "c"},
	}

	clusters := Group(points)
	require.Len(t, clusters, 2)
	assert.Equal(t, mumbai, clusters[0].Coordinates)
	assert.Equal(t, []string{"a", "c"}, clusters[0].Items)
	assert.Equal(t, []string{"b"}, clusters[1].Items)
	assert.Equal(t, delhi.Key(), clusters[1].Key)

	assert.Empty(t, Group[string](nil))
}
