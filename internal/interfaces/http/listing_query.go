package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/listing"
)

// parseListingQuery lee search, start_date, end_date (YYYY-MM-DD), sort, order, page y los
// filtros categóricos indicados. paged es false cuando no viene "page": el cliente quiere la lista completa.
func parseListingQuery(c *fiber.Ctx, filterKeys []string, loc *time.Location) (q listing.Query, paged bool, err error) {
	q.Search = c.Query("search")
	if q.StartDate, err = parseDay(c.Query("start_date"), loc); err != nil {
		return q, false, fmt.Errorf("start_date: %w", err)
	}
	if q.EndDate, err = parseDay(c.Query("end_date"), loc); err != nil {
		return q, false, fmt.Errorf("end_date: %w", err)
	}
	if field := c.Query("sort"); field != "" {
		q.Sort = listing.SortState{Field: field, Order: listing.Asc}
		if strings.EqualFold(c.Query("order"), string(listing.Desc)) {
			q.Sort.Order = listing.Desc
		}
	}
	q.Filters = make(map[string]string, len(filterKeys))
	for _, k := range filterKeys {
		if v := c.Query(k); v != "" {
			q.Filters[k] = v
		}
	}
	raw := c.Query("page")
	if raw == "" {
		return q, false, nil
	}
	q.Page, err = strconv.Atoi(raw)
	if err != nil {
		q.Page = 1
	}
	return q, true, nil
}

func parseDay(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q", s)
	}
	return &t, nil
}
