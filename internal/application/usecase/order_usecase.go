package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/listing"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// OrderFilters filtros categóricos aceptados por el listado de órdenes.
var OrderFilters = []string{"order_status", "payment_status"}

var orderSpec = listing.Spec[dto.OrderResponse]{
	Search: []func(dto.OrderResponse) string{
		func(o dto.OrderResponse) string { return strconv.FormatInt(o.OrderID, 10) },
		func(o dto.OrderResponse) string { return o.CustomerName },
	},
	Date: func(o dto.OrderResponse) (time.Time, bool) {
		if o.DateOrdered == nil {
			return time.Time{}, false
		}
		return *o.DateOrdered, true
	},
	Categories: map[string]func(dto.OrderResponse) string{
		"order_status":   func(o dto.OrderResponse) string { return o.OrderStatus },
		"payment_status": func(o dto.OrderResponse) string { return o.PaymentStatus },
	},
	Sortable: map[string]listing.SortField[dto.OrderResponse]{
		"order_id":       {Kind: listing.Numeric, Value: func(o dto.OrderResponse) string { return strconv.FormatInt(o.OrderID, 10) }},
		"customer_name":  {Kind: listing.Text, Value: func(o dto.OrderResponse) string { return o.CustomerName }},
		"date_ordered":   {Kind: listing.Text, Value: func(o dto.OrderResponse) string { return listing.TimeKey(o.DateOrdered) }},
		"total_amount":   {Kind: listing.Numeric, Value: func(o dto.OrderResponse) string { return o.TotalAmount.String() }},
		"order_status":   {Kind: listing.Text, Value: func(o dto.OrderResponse) string { return o.OrderStatus }},
		"payment_status": {Kind: listing.Text, Value: func(o dto.OrderResponse) string { return o.PaymentStatus }},
	},
}

// OrderUseCase órdenes con ítems para la consola y cambio de sus estados.
type OrderUseCase struct {
	repo repository.OrderRepository
	loc  *time.Location
}

// NewOrderUseCase construye el caso de uso. loc es la zona usada para los rangos de fecha.
func NewOrderUseCase(repo repository.OrderRepository, loc *time.Location) *OrderUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderUseCase{repo: repo, loc: loc}
}

// List devuelve todas las órdenes, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := uc.repo.ListWithItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Browse aplica búsqueda, rango de fechas, filtros, orden y paginación sobre todas las órdenes.
func (uc *OrderUseCase) Browse(ctx context.Context, q listing.Query) (*dto.ListingResponse[dto.OrderResponse], error) {
	all, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toListingResponse(listing.Apply(all, orderSpec, q, uc.loc), q.Sort), nil
}

// UpdatePaymentStatus cambia el estado de pago de una orden.
func (uc *OrderUseCase) UpdatePaymentStatus(ctx context.Context, orderID int64, status string) error {
	status, err := validStatus(status, entity.PaymentStatuses)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("actualizar estado de pago: %w", err)
	}
	return nil
}

// UpdateOrderStatus cambia el estado de una orden.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	status, err := validStatus(status, entity.OrderStatuses)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("actualizar estado de la orden: %w", err)
	}
	return nil
}

// Statuses estados asignables.
func (uc *OrderUseCase) Statuses() dto.OrderStatusesResponse {
	return dto.OrderStatusesResponse{
		PaymentStatuses: slices.Clone(entity.PaymentStatuses),
		OrderStatuses:   slices.Clone(entity.OrderStatuses),
	}
}

// validStatus acepta el nombre sin importar mayúsculas y devuelve la forma canónica.
func validStatus(status string, allowed []string) (string, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return "", fmt.Errorf("%w: status is required", domain.ErrInvalidInput)
	}
	for _, s := range allowed {
		if strings.EqualFold(s, status) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			OrderItemID: it.OrderItemID,
			VariationID: it.VariationID,
			ProductName: it.ProductName,
			Type:        it.Type,
			Value:       it.Value,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return dto.OrderResponse{
		OrderID:            o.OrderID,
		OrderTransactionID: o.OrderTransactionID,
		ReferenceNumber:    o.ReferenceNumber,
		CustomerName:       o.CustomerName,
		DateOrdered:        o.DateOrdered,
		TotalAmount:        o.TotalAmount,
		PaymentStatus:      o.PaymentStatus,
		OrderStatus:        o.OrderStatus,
		Items:              items,
	}
}

func toListingResponse[T any](p listing.Page[T], sort listing.SortState) *dto.ListingResponse[T] {
	resp := &dto.ListingResponse[T]{
		Items:      p.Items,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
	if sort.Field != "" {
		resp.Sort = sort.Field
		resp.Order = string(sort.Order)
	}
	return resp
}
