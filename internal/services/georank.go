package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/devjyoon/nearmarket/internal/geo"
)

// nullDistanceSentinel 거리값이 없는 행의 정렬용 가상 거리.
// 실제로 나올 수 있는 어떤 거리보다 커야 한다 (지구 둘레 < 50,000km).
const nullDistanceSentinel = math.MaxFloat64

// rankedRow 거리 정렬 파이프라인의 중간 표현
type rankedRow struct {
	idx     int
	dist    *float64
	created time.Time
}

// sortRanked orders rows by distance ascending with nil distance strictly
// last, then created_at descending as the tie-break. 거리값이 없는 항목도
// 버리지 않고 최신순으로 뒤에 붙는다.
func sortRanked(rows []rankedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := sortDistance(rows[i]), sortDistance(rows[j])
		if di != dj {
			return di < dj
		}
		return rows[i].created.After(rows[j].created)
	})
}

func sortDistance(r rankedRow) float64 {
	if r.dist == nil {
		return nullDistanceSentinel
	}
	return *r.dist
}

// rankRows computes exact distances from origin for every row with a
// position, drops rows beyond radiusKm (radiusKm <= 0 means no cut), and
// returns the surviving rows in final order.
func rankRows(origin geo.Point, radiusKm float64, n int,
	pointAt func(i int) (geo.Point, bool), createdAt func(i int) time.Time) []rankedRow {

	rows := make([]rankedRow, 0, n)
	for i := 0; i < n; i++ {
		row := rankedRow{idx: i, created: createdAt(i)}
		if p, ok := pointAt(i); ok {
			d := geo.Distance(origin, p)
			if radiusKm > 0 && d > radiusKm {
				continue
			}
			row.dist = &d
		} else if radiusKm > 0 {
			// 반경 필터가 걸려 있으면 좌표 없는 행은 매칭되지 않는다
			continue
		}
		rows = append(rows, row)
	}

	sortRanked(rows)
	return rows
}

// geoParams validates and normalizes the geo portion of a search filter.
// 좌표가 없으면 origin nil을 반환하고, 반경은 0 이하일 때 "필터 없음"으로
// 정규화된다.
func (f *SearchFilter) geoParams() (*geo.Point, float64, error) {
	if f.Lat == nil && f.Lng == nil {
		return nil, 0, nil
	}
	if f.Lat == nil || f.Lng == nil {
		return nil, 0, fmt.Errorf("%w: lat and lng must be given together", ErrInvalidQuery)
	}

	origin := geo.Point{Lat: *f.Lat, Lng: *f.Lng}
	if err := origin.Validate(); err != nil {
		return nil, 0, err
	}

	radius := 0.0
	if f.RadiusKm != nil && *f.RadiusKm > 0 {
		radius = *f.RadiusKm
	}
	return &origin, radius, nil
}
