// Package geo resolves free-text locations to coordinates and groups points
// that share a position.
package geo

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Coordinates is a WGS84 position
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns the grouping key, coordinates rounded to 4 decimals
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// Locator resolves a location text to coordinates
type Locator interface {
	Locate(text string) (Coordinates, bool)
}

type city struct {
	name   string
	coords Coordinates
}

// StaticLocator matches location text against a fixed city table
type StaticLocator struct {
	cities []city
}

// NewStaticLocator returns a locator over the built-in Indian city table
func NewStaticLocator() *StaticLocator {
	return &StaticLocator{cities: []city{
		{"mumbai", Coordinates{19.0760, 72.8777}},
		{"delhi", Coordinates{28.7041, 77.1025}},
		{"bangalore", Coordinates{12.9716, 77.5946}},
		{"bengaluru", Coordinates{12.9716, 77.5946}},
		{"kolkata", Coordinates{22.5726, 88.3639}},
		{"chennai", Coordinates{13.0827, 80.2707}},
		{"hyderabad", Coordinates{17.3850, 78.4867}},
		{"pune", Coordinates{18.5204, 73.8567}},
	}}
}

// Locate returns the first city whose name occurs in text, case-insensitively
func (l *StaticLocator) Locate(text string) (Coordinates, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Coordinates{}, false
	}
	for _, c := range l.cities {
		if strings.Contains(normalized, c.name) {
			return c.coords, true
		}
	}
	return Coordinates{}, false
}

// Fallback box for unresolved locations
const (
	fallbackLatMin  = 20.0
	fallbackLatSpan = 10.0
	fallbackLngMin  = 72.0
	fallbackLngSpan = 15.0
)

// FallbackLocator delegates to next and, on a miss, returns a pseudo-random
// point inside lat [20,30) lng [72,87). It always resolves.
type FallbackLocator struct {
	next Locator

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFallbackLocator wraps next. rnd must not be shared with other goroutines.
func NewFallbackLocator(next Locator, rnd *rand.Rand) *FallbackLocator {
	return &FallbackLocator{next: next, rnd: rnd}
}

func (l *FallbackLocator) Locate(text string) (Coordinates, bool) {
	if l.next != nil {
		if c, ok := l.next.Locate(text); ok {
			return c, true
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return Coordinates{
		Latitude:  fallbackLatMin + l.rnd.Float64()*fallbackLatSpan,
		Longitude: fallbackLngMin + l.rnd.Float64()*fallbackLngSpan,
	}, true
}

// Point is an item placed at a position
type Point[T any] struct {
	Coordinates
	Item T
}

// Cluster is the set of items sharing one grouping key
type Cluster[T any] struct {
	Key string
	Coordinates
	Items []T
}

// Group buckets points by Key. Clusters keep first-seen order and take the
// coordinates of their first point.
func Group[T any](points []Point[T]) []Cluster[T] {
	index := make(map[string]int, len(points))
	clusters := make([]Cluster[T], 0, len(points))
	for _, p := range points {
		key := p.Key()
		i, ok := index[key]
		if !ok {
			i = len(clusters)
			index[key] = i
			clusters = append(clusters, Cluster[T]{Key: key, Coordinates: p.Coordinates})
		}
		clusters[i].Items = append(clusters[i].Items, p.Item)
	}
	return clusters
}
