package services

import (
	"time"

	"github.com/devjyoon/nearmarket/internal/database"
	"github.com/devjyoon/nearmarket/internal/geo"
	"github.com/devjyoon/nearmarket/internal/models"
	"gorm.io/gorm"
)

type RequestService struct {
	db       *database.DB
	maxLimit int
}

func NewRequestService(db *database.DB, maxLimit int) *RequestService {
	return &RequestService{db: db, maxLimit: maxLimit}
}

// RankedRequest 검색 결과 한 건. 좌표 기반 검색이 아니면 distance_km는 null.
type RankedRequest struct {
	models.Request
	DistanceKm *float64 `json:"distance_km"`
}

type RequestSearchResponse struct {
	Items      []RankedRequest `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Search retrieves active requests ranked by distance from the query
// point. 파이프라인은 ListingService.Search와 동일하다.
func (s *RequestService) Search(filter *SearchFilter) (*RequestSearchResponse, error) {
	limit, offset, err := filter.normalize(s.maxLimit)
	if err != nil {
		return nil, err
	}
	origin, radiusKm, err := filter.geoParams()
	if err != nil {
		return nil, err
	}

	query := s.activeRequests(time.Now())
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if origin == nil {
		return s.searchByRecency(query, limit, offset, filter)
	}

	if radiusKm > 0 {
		box := geo.NewBoundingBox(*origin, radiusKm)
		query = query.
			Where("lat IS NOT NULL AND lng IS NOT NULL").
			Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
			Where("lng BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	var candidates []models.Request
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}

	rows := rankRows(*origin, radiusKm, len(candidates),
		func(i int) (geo.Point, bool) {
			lat, lng, ok := candidates[i].Point()
			return geo.Point{Lat: lat, Lng: lng}, ok
		},
		func(i int) time.Time { return candidates[i].CreatedAt },
	)

	total := int64(len(rows))
	items := make([]RankedRequest, 0, limit)
	for i := offset; i < len(rows) && len(items) < limit; i++ {
		items = append(items, RankedRequest{
			Request:    candidates[rows[i].idx],
			DistanceKm: rows[i].dist,
		})
	}

	return &RequestSearchResponse{
		Items:      items,
		Total:      total,
		Page:       pageOf(filter, offset, limit),
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *RequestService) searchByRecency(query *gorm.DB, limit, offset int, filter *SearchFilter) (*RequestSearchResponse, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var requests []models.Request
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, err
	}

	items := make([]RankedRequest, 0, len(requests))
	for _, r := range requests {
		items = append(items, RankedRequest{Request: r})
	}

	return &RequestSearchResponse{
		Items:      items,
		Total:      total,
		Page:       pageOf(filter, offset, limit),
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetByID retrieves a request by ID with relations
func (s *RequestService) GetByID(id uint) (*models.Request, error) {
	var request models.Request
	err := s.db.Preload("Category").First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// activeRequests 활성 상태이고 만료되지 않은 요청만 선택하는 기본 쿼리
func (s *RequestService) activeRequests(now time.Time) *gorm.DB {
	return s.db.Model(&models.Request{}).
		Preload("Category").
		Where("status = ?", models.StatusActive).
		Where("expires_at IS NULL OR expires_at > ?", now)
}
