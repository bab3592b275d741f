// Package listing implementa el patrón de listado de la consola de administración:
// búsqueda, rango de fechas, filtros por categoría, orden por columna y paginación
// sobre un conjunto de registros ya cargado en memoria. Todas las funciones son puras.
package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// PageSize filas por página en todas las tablas de la consola.
const PageSize = 10

// Order dirección de ordenamiento.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortState columna y dirección de orden actuales.
type SortState struct {
	Field string
	Order Order
}

// Toggle aplica un clic sobre la cabecera de field: la misma columna ascendente pasa a
// descendente; cualquier otro caso ordena ascendente por field.
func (s SortState) Toggle(field string) SortState {
	if s.Field == field && s.Order == Asc {
		return SortState{Field: field, Order: Desc}
	}
	return SortState{Field: field, Order: Asc}
}

// SortKind cómo se comparan los valores de una columna.
type SortKind int

const (
	Text    SortKind = iota // comparación de strings byte a byte
	Numeric                 // se convierte a número antes de comparar
)

// SortField columna ordenable.
type SortField[T any] struct {
	Kind  SortKind
	Value func(T) string
}

// Spec describe qué campos de T participan en cada etapa.
type Spec[T any] struct {
	Search     []func(T) string
	Date       func(T) (time.Time, bool)
	Categories map[string]func(T) string
	Sortable   map[string]SortField[T]
}

// Query estado de los controles de la tabla.
type Query struct {
	Search    string
	StartDate *time.Time // día calendario, se normaliza a 00:00:00.000
	EndDate   *time.Time // día calendario, se normaliza a 23:59:59.999
	Filters   map[string]string
	Sort      SortState
	Page      int
}

// Page resultado paginado.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
}

// Apply ejecuta, en este orden: búsqueda, rango de fechas, filtros, orden y paginación.
// items no se modifica.
func Apply[T any](items []T, spec Spec[T], q Query, loc *time.Location) Page[T] {
	out := Search(items, spec.Search, q.Search)
	out = FilterDateRange(out, spec.Date, q.StartDate, q.EndDate, loc)
	out = FilterCategories(out, spec.Categories, q.Filters)
	out = Sort(out, spec.Sortable, q.Sort)
	return Paginate(out, q.Page)
}

// Search conserva los registros donde algún campo contiene term (sin distinguir mayúsculas).
func Search[T any](items []T, fields []func(T) string, term string) []T {
	if strings.TrimSpace(term) == "" || len(fields) == 0 {
		return slices.Clone(items)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields {
			if strings.Contains(fold.String(f(it)), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// StartOfDay devuelve las 00:00:00.000 del día de d en loc.
func StartOfDay(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.In(loc).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// EndOfDay devuelve las 23:59:59.999 del día de d en loc.
func EndOfDay(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.In(loc).Date()
	return time.Date(y, m, day, 23, 59, 59, int(999*time.Millisecond), loc)
}

// FilterDateRange aplica un rango inclusivo. Con un rango activo, los registros sin fecha se excluyen.
func FilterDateRange[T any](items []T, date func(T) (time.Time, bool), start, end *time.Time, loc *time.Location) []T {
	if (start == nil && end == nil) || date == nil {
		return items
	}
	if loc == nil {
		loc = time.UTC
	}
	var from, to time.Time
	if start != nil {
		from = StartOfDay(*start, loc)
	}
	if end != nil {
		to = EndOfDay(*end, loc)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		t, ok := date(it)
		if !ok {
			continue
		}
		if start != nil && t.Before(from) {
			continue
		}
		if end != nil && t.After(to) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// FilterCategories aplica igualdad exacta por cada filtro con valor; filtros desconocidos se ignoran.
func FilterCategories[T any](items []T, categories map[string]func(T) string, filters map[string]string) []T {
	active := make(map[string]string, len(filters))
	for k, v := range filters {
		if v == "" {
			continue
		}
		if _, ok := categories[k]; ok {
			active[k] = v
		}
	}
	if len(active) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		match := true
		for k, v := range active {
			if categories[k](it) != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, it)
		}
	}
	return out
}

// Sort ordena de forma estable por la columna de state. Columna vacía o desconocida: sin cambios.
func Sort[T any](items []T, fields map[string]SortField[T], state SortState) []T {
	f, ok := fields[state.Field]
	if !ok || state.Field == "" {
		return items
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		c := Compare(f.Value(a), f.Value(b), f.Kind)
		if state.Order == Desc {
			return -c
		}
		return c
	})
	return out
}

// Compare comparación de tres vías: -1 si a < b, 1 si a > b, 0 en otro caso.
// En columnas numéricas un valor no convertible se considera igual a cualquier otro.
func Compare(a, b string, kind SortKind) int {
	if kind == Numeric {
		da, errA := decimal.NewFromString(strings.TrimSpace(a))
		db, errB := decimal.NewFromString(strings.TrimSpace(b))
		if errA != nil || errB != nil {
			return 0
		}
		return da.Cmp(db)
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// TotalPages ceil(total / PageSize).
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

// Paginate devuelve la página solicitada, acotada a [1, max(1, TotalPages)].
func Paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	pages := TotalPages(total)
	page = clampPage(page, pages)
	start := (page - 1) * PageSize
	end := min(start+PageSize, total)
	var slice []T
	if start < total {
		slice = items[start:end]
	}
	if slice == nil {
		slice = []T{}
	}
	return Page[T]{
		Items:      slice,
		Page:       page,
		TotalPages: pages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}

// NextPage avanza una página sin pasar de la última.
func NextPage(page, totalPages int) int {
	if page < totalPages {
		return page + 1
	}
	return page
}

// PrevPage retrocede una página sin bajar de la primera.
func PrevPage(page int) int {
	if page > 1 {
		return page - 1
	}
	return page
}

// TimeKey representación ordenable lexicográficamente de un instante (UTC, ancho fijo).
func TimeKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000000000")
}

func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if pages > 0 && page > pages {
		return pages
	}
	if pages == 0 {
		return 1
	}
	return page
}
