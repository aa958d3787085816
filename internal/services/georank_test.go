package services

import (
	"testing"
	"time"

	"github.com/devjyoon/nearmarket/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntity struct {
	point   *geo.Point
	created time.Time
}

func rankTestEntities(t *testing.T, origin geo.Point, radiusKm float64, entities []testEntity) []rankedRow {
	t.Helper()
	return rankRows(origin, radiusKm, len(entities),
		func(i int) (geo.Point, bool) {
			if entities[i].point == nil {
				return geo.Point{}, false
			}
			return *entities[i].point, true
		},
		func(i int) time.Time { return entities[i].created },
	)
}

func TestRankRowsOrderedByDistance(t *testing.T) {
	origin := geo.Point{Lat: 0, Lng: 0}
	now := time.Now()

	entities := []testEntity{
		{point: &geo.Point{Lat: 0, Lng: 0.5}, created: now},
		{point: &geo.Point{Lat: 0, Lng: 0.1}, created: now},
		{point: &geo.Point{Lat: 0.3, Lng: 0}, created: now},
	}

	rows := rankTestEntities(t, origin, 100, entities)
	require.Len(t, rows, 3)

	// 거리 오름차순
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, *rows[i-1].dist, *rows[i].dist)
	}
	assert.Equal(t, 1, rows[0].idx)
	assert.Equal(t, 2, rows[1].idx)
	assert.Equal(t, 0, rows[2].idx)
}

func TestRankRowsRadiusCut(t *testing.T) {
	origin := geo.Point{Lat: 0, Lng: 0}
	now := time.Now()

	// 경도 1도 ≈ 111km: 반경 50km면 제외되어야 한다
	entities := []testEntity{
		{point: &geo.Point{Lat: 0, Lng: 0}, created: now},
		{point: &geo.Point{Lat: 0, Lng: 1}, created: now},
	}

	rows := rankTestEntities(t, origin, 50, entities)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].idx)
	assert.InDelta(t, 0, *rows[0].dist, 1e-9)
}

func TestRankRowsExcludesNoPositionWhenRadiusSet(t *testing.T) {
	origin := geo.Point{Lat: 0, Lng: 0}
	entities := []testEntity{
		{point: &geo.Point{Lat: 0, Lng: 0.1}, created: time.Now()},
		{point: nil, created: time.Now()},
	}

	rows := rankTestEntities(t, origin, 50, entities)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].idx)
}

func TestRankRowsNullDistanceSortsLast(t *testing.T) {
	origin := geo.Point{Lat: 0, Lng: 0}
	old := time.Now().Add(-time.Hour)
	newer := time.Now()

	// 반경 필터 없음 (radiusKm=0): 좌표 없는 행도 유지되지만 항상 뒤로 간다
	entities := []testEntity{
		{point: nil, created: newer},
		{point: &geo.Point{Lat: 5, Lng: 5}, created: old},
		{point: nil, created: old},
		{point: &geo.Point{Lat: 0, Lng: 0.1}, created: old},
	}

	rows := rankTestEntities(t, origin, 0, entities)
	require.Len(t, rows, 4)

	// 거리 있는 항목이 먼저, 그 중 가까운 것부터
	assert.Equal(t, 3, rows[0].idx)
	assert.Equal(t, 1, rows[1].idx)

	// 거리 없는 항목은 모두 뒤, 최신순
	require.Nil(t, rows[2].dist)
	require.Nil(t, rows[3].dist)
	assert.Equal(t, 0, rows[2].idx)
	assert.Equal(t, 2, rows[3].idx)
}

func TestRankRowsTieBreakByRecency(t *testing.T) {
	origin := geo.Point{Lat: 0, Lng: 0}
	p := geo.Point{Lat: 0, Lng: 0.1}
	old := time.Now().Add(-time.Hour)
	newer := time.Now()

	entities := []testEntity{
		{point: &p, created: old},
		{point: &p, created: newer},
	}

	rows := rankTestEntities(t, origin, 50, entities)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].idx, "same distance: newer row first")
	assert.Equal(t, 0, rows[1].idx)
}

func TestSearchFilterNormalize(t *testing.T) {
	f := &SearchFilter{}
	limit, offset, err := f.normalize(100)
	require.NoError(t, err)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	f = &SearchFilter{Limit: 500}
	limit, _, err = f.normalize(100)
	require.NoError(t, err)
	assert.Equal(t, 100, limit)

	f = &SearchFilter{Page: 3, Limit: 10}
	_, offset, err = f.normalize(100)
	require.NoError(t, err)
	assert.Equal(t, 20, offset)

	f = &SearchFilter{Offset: 37, Page: 3, Limit: 10}
	_, offset, err = f.normalize(100)
	require.NoError(t, err)
	assert.Equal(t, 37, offset, "offset takes precedence over page")

	for _, bad := range []*SearchFilter{
		{Limit: -1},
		{Page: -2},
		{Offset: -5},
	} {
		_, _, err := bad.normalize(100)
		assert.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestSearchFilterGeoParams(t *testing.T) {
	lat, lng := 37.5665, 126.978
	radius := 10.0

	f := &SearchFilter{Lat: &lat, Lng: &lng, RadiusKm: &radius}
	origin, r, err := f.geoParams()
	require.NoError(t, err)
	require.NotNil(t, origin)
	assert.Equal(t, 10.0, r)

	// 좌표 생략: 지오 필터 없음
	f = &SearchFilter{}
	origin, r, err = f.geoParams()
	require.NoError(t, err)
	assert.Nil(t, origin)
	assert.Equal(t, 0.0, r)

	// 반경 0 이하: "필터 없음"으로 정규화 (0행 반환이 아니라)
	zero := 0.0
	f = &SearchFilter{Lat: &lat, Lng: &lng, RadiusKm: &zero}
	origin, r, err = f.geoParams()
	require.NoError(t, err)
	require.NotNil(t, origin)
	assert.Equal(t, 0.0, r)

	// lat만 있는 경우
	f = &SearchFilter{Lat: &lat}
	_, _, err = f.geoParams()
	assert.ErrorIs(t, err, ErrInvalidQuery)

	// 범위 밖 좌표
	badLat := 91.0
	f = &SearchFilter{Lat: &badLat, Lng: &lng}
	_, _, err = f.geoParams()
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}
