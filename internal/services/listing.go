package services

import (
	"time"

	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/geo"
	"github.com/devjyoon/nearmarket/internal/models"
	"gorm.io/gorm"
)

type ListingService struct {
	db       *database.DB
	maxLimit int
}

func NewListingService(db *database.DB, maxLimit int) *ListingService {
	return &ListingService{db: db, maxLimit: maxLimit}
}

// RankedListing 검색 결과 한 건. 좌표 기반 검색이 아니면 distance_km는 null.
type RankedListing struct {
	models.Listing
	DistanceKm *float64 `json:"distance_km"`
}

type ListingSearchResponse struct {
	Items      []RankedListing `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Search retrieves active listings ranked by distance from the query
// point. Read-only: 검색은 어떤 테이블도 변경하지 않는다.
//
// 파이프라인: 저렴한 술어(상태/만료/카테고리) → bounding box 후보군 축소(인덱스)
// → 생존 후보에만 haversine 정밀 거리 → 정렬 → 페이지네이션.
func (s *ListingService) Search(filter *SearchFilter) (*ListingSearchResponse, error) {
	limit, offset, err := filter.normalize(s.maxLimit)
	if err != nil {
		return nil, err
	}
	origin, radiusKm, err := filter.geoParams()
	if err != nil {
		return nil, err
	}

	query := s.activeListings(time.Now())
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	// 좌표가 없으면 거리 정렬 불가: 최신순 + SQL 페이지네이션
	if origin == nil {
		return s.searchByRecency(query, limit, offset, filter)
	}

	// Bounding box 후보군 축소 (lat/lng 인덱스 사용).
	// 반경이 0 이하이면 "반경 필터 없음": 박스 없이 전체를 거리 계산한다.
	if radiusKm > 0 {
		box := geo.NewBoundingBox(*origin, radiusKm)
		query = query.
			Where("lat IS NOT NULL AND lng IS NOT NULL").
			Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
			Where("lng BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	var candidates []models.Listing
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}

	// 후보군에만 정밀 거리 계산 후 정렬 (테이블 크기가 아닌 후보 수에 비례)
	rows := rankRows(*origin, radiusKm, len(candidates),
		func(i int) (geo.Point, bool) {
			lat, lng, ok := candidates[i].Point()
			return geo.Point{Lat: lat, Lng: lng}, ok
		},
		func(i int) time.Time { return candidates[i].CreatedAt },
	)

	total := int64(len(rows))
	items := make([]RankedListing, 0, limit)
	for i := offset; i < len(rows) && len(items) < limit; i++ {
		items = append(items, RankedListing{
			Listing:    candidates[rows[i].idx],
			DistanceKm: rows[i].dist,
		})
	}

	return &ListingSearchResponse{
		Items:      items,
		Total:      total,
		Page:       pageOf(filter, offset, limit),
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// searchByRecency 좌표 없는 검색: 최신순으로만 정렬한다
func (s *ListingService) searchByRecency(query *gorm.DB, limit, offset int, filter *SearchFilter) (*ListingSearchResponse, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var listings []models.Listing
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&listings).Error
	if err != nil {
		return nil, err
	}

	items := make([]RankedListing, 0, len(listings))
	for _, l := range listings {
		items = append(items, RankedListing{Listing: l})
	}

	return &ListingSearchResponse{
		Items:      items,
		Total:      total,
		Page:       pageOf(filter, offset, limit),
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetByID retrieves a listing by ID with relations
func (s *ListingService) GetByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.Preload("Category").First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// activeListings 활성 상태이고 만료되지 않은 리스팅만 선택하는 기본 쿼리
func (s *ListingService) activeListings(now time.Time) *gorm.DB {
	return s.db.Model(&models.Listing{}).
		Preload("Category").
		Where("status = ?", models.StatusActive).
		Where("expires_at IS NULL OR expires_at > ?", now)
}

func pageOf(filter *SearchFilter, offset, limit int) int {
	if filter.Page > 0 {
		return filter.Page
	}
	return offset/limit + 1
}
