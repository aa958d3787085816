package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		a, b Point
	}{
		{Point{37.5665, 126.9780}, Point{35.1796, 129.0756}}, // 서울-부산
		{Point{0, 0}, Point{0, 1}},
		{Point{-33.8688, 151.2093}, Point{51.5074, -0.1278}},
	}

	for _, p := range pairs {
		assert.InDelta(t, Distance(p.a, p.b), Distance(p.b, p.a), 1e-9)
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := []Point{
		{0, 0},
		{37.5665, 126.9780},
		{-90, 0},
		{90, 180},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p))
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// 적도에서 경도 1도 ≈ 111.19 km
	d := Distance(Point{0, 0}, Point{0, 1})
	assert.InDelta(t, 111.19, d, 0.5)

	// 서울-부산 직선거리 ≈ 325 km
	d = Distance(Point{37.5665, 126.9780}, Point{35.1796, 129.0756})
	assert.InDelta(t, 325, d, 5)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Point{0, 0}.Validate())
	require.NoError(t, Point{-90, 180}.Validate())
	require.NoError(t, Point{90, -180}.Validate())

	for _, p := range []Point{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	} {
		err := p.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	}
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	center := Point{37.5665, 126.9780}
	box := NewBoundingBox(center, 10)

	// 반경 내 점은 반드시 박스 안에 있어야 한다
	inside := []Point{
		{37.5665, 126.9780},
		{37.62, 126.9780}, // 북쪽 약 6km
		{37.5665, 127.08}, // 동쪽 약 9km
	}
	for _, p := range inside {
		require.LessOrEqual(t, Distance(center, p), 10.0)
		assert.True(t, box.Contains(p), "point %v should be inside box", p)
	}

	// 충분히 먼 점은 박스 밖
	assert.False(t, box.Contains(Point{38.5, 126.9780}))
}

func TestBoundingBoxMonotonic(t *testing.T) {
	center := Point{37.5665, 126.9780}
	small := NewBoundingBox(center, 5)
	large := NewBoundingBox(center, 50)

	// 반경이 커지면 박스도 커진다 (후보군 단조성)
	assert.LessOrEqual(t, large.MinLat, small.MinLat)
	assert.GreaterOrEqual(t, large.MaxLat, small.MaxLat)
	assert.LessOrEqual(t, large.MinLng, small.MinLng)
	assert.GreaterOrEqual(t, large.MaxLng, small.MaxLng)
}

func TestBoundingBoxClampedAtPole(t *testing.T) {
	box := NewBoundingBox(Point{89.9, 0}, 100)
	assert.LessOrEqual(t, box.MaxLat, 90.0)
	assert.Equal(t, -180.0, box.MinLng)
	assert.Equal(t, 180.0, box.MaxLng)
}
