package services

import "fmt"

// SearchFilter 근접 검색 공통 파라미터 (리스팅/요청 공용)
type SearchFilter struct {
	Lat        *float64
	Lng        *float64
	RadiusKm   *float64
	CategoryID uint
	Limit      int
	Page       int
	Offset     int // 모바일 앱 호환성
}

const defaultLimit = 20

// normalize validates pagination parameters and resolves limit/offset.
func (f *SearchFilter) normalize(maxLimit int) (limit, offset int, err error) {
	if f.Limit < 0 {
		return 0, 0, fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	if f.Page < 0 || f.Offset < 0 {
		return 0, 0, fmt.Errorf("%w: negative page/offset", ErrInvalidQuery)
	}

	limit = f.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	// Pagination - offset 우선, 없으면 page 기반
	if f.Offset > 0 {
		offset = f.Offset
	} else if f.Page > 1 {
		offset = (f.Page - 1) * limit
	}
	return limit, offset, nil
}

func totalPages(total int64, limit int) int {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
