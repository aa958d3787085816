package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/devjyoon/nearmarket/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseVia(t *testing.T, target string) (*services.SearchFilter, error) {
	t.Helper()

	var filter *services.SearchFilter
	var parseErr error

	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		filter, parseErr = parseSearchFilter(c, 50)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	return filter, parseErr
}

func TestParseSearchFilterDefaults(t *testing.T) {
	filter, err := parseVia(t, "/t")
	require.NoError(t, err)

	// 좌표 생략은 "지오 필터 없음"을 의미한다
	assert.Nil(t, filter.Lat)
	assert.Nil(t, filter.Lng)
	require.NotNil(t, filter.RadiusKm)
	assert.Equal(t, 50.0, *filter.RadiusKm)
	assert.Equal(t, 0, filter.Limit)
	assert.Equal(t, uint(0), filter.CategoryID)
}

func TestParseSearchFilterFull(t *testing.T) {
	filter, err := parseVia(t, "/t?lat=37.5665&lng=126.978&radius_km=10&category_id=3&limit=5&page=2")
	require.NoError(t, err)

	require.NotNil(t, filter.Lat)
	assert.Equal(t, 37.5665, *filter.Lat)
	require.NotNil(t, filter.Lng)
	assert.Equal(t, 126.978, *filter.Lng)
	assert.Equal(t, 10.0, *filter.RadiusKm)
	assert.Equal(t, uint(3), filter.CategoryID)
	assert.Equal(t, 5, filter.Limit)
	assert.Equal(t, 2, filter.Page)
}

func TestParseSearchFilterZeroRadiusKept(t *testing.T) {
	// radius_km=0은 "반경 컷 없음" 요청이므로 기본값으로 덮어쓰지 않는다
	filter, err := parseVia(t, "/t?lat=1&lng=2&radius_km=0")
	require.NoError(t, err)
	require.NotNil(t, filter.RadiusKm)
	assert.Equal(t, 0.0, *filter.RadiusKm)
}

func TestParseSearchFilterBadNumbers(t *testing.T) {
	_, err := parseVia(t, "/t?lat=abc")
	require.Error(t, err)

	_, err = parseVia(t, "/t?lat=1&lng=2&radius_km=abc")
	require.Error(t, err)
}
