package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paramsForQuery(t *testing.T, query string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/?"+query, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	return got
}

func TestGetParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "")
	if params.Page != 1 || params.Limit != DefaultLimit || params.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestGetParamsOffset(t *testing.T) {
	params := paramsForQuery(t, "page=3&per_page=10")
	if params.Page != 3 || params.Limit != 10 || params.Offset != 20 {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestGetParamsClampsLimit(t *testing.T) {
	params := paramsForQuery(t, "per_page=500")
	if params.Limit != MaxLimit {
		t.Fatalf("expected limit %d, got %d", MaxLimit, params.Limit)
	}

	params = paramsForQuery(t, "page=-2&per_page=0")
	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Fatalf("expected sanitized params, got %+v", params)
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 20}, 45)
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Fatalf("expected middle page to have both neighbours: %+v", meta)
	}

	meta = GetMeta(&Params{Page: 1, Limit: 20}, 0)
	if meta.TotalPages != 0 || meta.HasNext || meta.HasPrev {
		t.Fatalf("unexpected meta for empty result: %+v", meta)
	}
}
