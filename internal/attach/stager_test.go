package attach

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func asset(i int) Asset {
	return Asset{URI: fmt.Sprintf("file:///tmp/photo-%d.jpg", i), ContentType: "image/jpeg"}
}

func TestAddCapsAtSix(t *testing.T) {
	s := NewStager()

	added := s.Add(asset(1), asset(2), asset(3), asset(4))
	assert.Equal(t, 4, added)

	// Second batch overflows: only two fit, the rest are dropped.
	added = s.Add(asset(5), asset(6), asset(7), asset(8))
	assert.Equal(t, 2, added)
	assert.Equal(t, MaxStaged, s.Len())

	// Staged entries are never evicted for newcomers.
	assert.Equal(t, 0, s.Add(asset(9)))

	list := s.List()
	assert.Equal(t, asset(1).URI, list[0].URI)
	assert.Equal(t, asset(6).URI, list[5].URI)
}

func TestAddManyInOneCall(t *testing.T) {
	s := NewStager()
	var batch []Asset
	for i := 0; i < 20; i++ {
		batch = append(batch, asset(i))
	}
	s.Add(batch...)
	assert.Equal(t, MaxStaged, s.Len())
}

func TestRemoveOutOfBoundsIsNoop(t *testing.T) {
	s := NewStager()
	s.Add(asset(1), asset(2))

	s.Remove(-1)
	s.Remove(2)
	assert.Equal(t, 2, s.Len())

	s.Remove(0)
	list := s.List()
	assert.Len(t, list, 1)
	assert.Equal(t, asset(2).URI, list[0].URI)
}

func TestClear(t *testing.T) {
	s := NewStager()
	s.Add(asset(1))
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, MaxStaged, s.Add(asset(1), asset(2), asset(3), asset(4), asset(5), asset(6)))
}
