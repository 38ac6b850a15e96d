package handlers

import "github.com/gofiber/fiber/v2"

// pageParams reads ?limit and ?offset. Missing or non-numeric values take the
// defaults; an oversized limit is clamped to maxLimit.
func pageParams(c *fiber.Ctx, defLimit, maxLimit int) (limit, offset int) {
	limit = c.QueryInt("limit", defLimit)
	switch {
	case limit <= 0:
		limit = defLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
