package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm 지구 반지름 (km)
const EarthRadiusKm = 6371

// ErrInvalidCoordinate 위도/경도 범위를 벗어난 좌표
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point represents a position in signed decimal degrees
type Point struct {
	Lat float64
	Lng float64
}

// Validate checks that the point lies within valid lat/lng ranges
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) ||
		math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrInvalidCoordinate, p.Lat, p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: lat=%v (must be within ±90)", ErrInvalidCoordinate, p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: lng=%v (must be within ±180)", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in kilometers.
// Haversine 공식 사용: 평면 거리로는 랭킹 순서가 달라질 수 있는 거리대를 다루므로
// 구면 거리로 계산한다.
func Distance(a, b Point) float64 {
	latA := radians(a.Lat)
	latB := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// BoundingBox 중심점과 반경(km)으로 위경도 범위를 계산한다.
// 후보군 1차 필터용 근사치: 실제 거리 컷은 Distance로 다시 거른다.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBoundingBox returns a box guaranteed to contain every point within
// radiusKm of center. The box is intentionally looser than the exact
// circle; callers must re-check with Distance.
func NewBoundingBox(center Point, radiusKm float64) BoundingBox {
	latDelta := radiusKm / degreeLatKm

	// 경도 1도의 거리는 위도에 따라 줄어들므로 cos(lat)로 보정.
	// 극지방에서는 보정값이 발산하므로 전체 경도 범위로 클램프한다.
	cosLat := math.Cos(radians(center.Lat))
	lngDelta := 180.0
	if cosLat > 1e-6 {
		lngDelta = radiusKm / (degreeLatKm * cosLat)
	}

	box := BoundingBox{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
		MinLng: center.Lng - lngDelta,
		MaxLng: center.Lng + lngDelta,
	}

	if box.MinLat < -90 {
		box.MinLat = -90
	}
	if box.MaxLat > 90 {
		box.MaxLat = 90
	}
	if box.MinLng < -180 {
		box.MinLng = -180
	}
	if box.MaxLng > 180 {
		box.MaxLng = 180
	}
	return box
}

// Contains reports whether p lies inside the box
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// 위도 1도당 거리 (km), 구면 근사
const degreeLatKm = math.Pi * EarthRadiusKm / 180

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
