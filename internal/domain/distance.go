package domain

import "fmt"

// DistanceMatrix records the distance in meters from each property to
// each reference location. Row order follows the source file and is the
// tie-break order for equal distances.
type DistanceMatrix struct {
	Properties []string
	Locations  []string
	Meters     [][]float64
}

// LocationIndex returns the column for a reference location.
func (m *DistanceMatrix) LocationIndex(name string) (int, error) {
	for i, l := range m.Locations {
		if l == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
}
