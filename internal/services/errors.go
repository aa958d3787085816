package services

import "errors"

// ErrInvalidQuery 음수 radius/limit 등 잘못된 검색 파라미터
var ErrInvalidQuery = errors.New("invalid query")
