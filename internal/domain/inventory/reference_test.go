package inventory_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
)

var adjPattern = regexp.MustCompile(`^ADJ-\d{8}-\d+$`)

func lookupFrom(refs map[int64]string) inventory.ReferenceLookup {
	return func(_ context.Context, id int64) (string, error) {
		ref, ok := refs[id]
		if !ok {
			return "", domain.ErrOrderTransactionNotFound
		}
		return ref, nil
	}
}

func counter() inventory.SequenceFunc {
	var n int64
	return func(context.Context) (int64, error) {
		n++
		return n, nil
	}
}

func TestResolveReferenceNumber_ReutilizaReferenciaDeOrden(t *testing.T) {
	id := int64(42)
	seqCalled := false
	next := func(context.Context) (int64, error) {
		seqCalled = true
		return 1, nil
	}

	ref, err := inventory.ResolveReferenceNumber(context.Background(), &id,
		lookupFrom(map[int64]string{42: "ORD-001"}), next, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "ORD-001", ref)
	assert.False(t, seqCalled, "con orden vinculada no se consume la secuencia")
}

func TestResolveReferenceNumber_OrdenInexistente(t *testing.T) {
	id := int64(99)
	_, err := inventory.ResolveReferenceNumber(context.Background(), &id,
		lookupFrom(nil), counter(), time.Now())
	assert.ErrorIs(t, err, domain.ErrOrderTransactionNotFound)
}

func TestResolveReferenceNumber_GeneraAjusteConFechaUTC(t *testing.T) {
	// 23:30 en UTC-5 ya es el día siguiente en UTC
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, loc)

	ref, err := inventory.ResolveReferenceNumber(context.Background(), nil, lookupFrom(nil), counter(), now)
	require.NoError(t, err)
	assert.Equal(t, "ADJ-20240310-1", ref)
	assert.Regexp(t, adjPattern, ref)
}

func TestResolveReferenceNumber_LlamadasSucesivasNoRepiten(t *testing.T) {
	next := counter()
	now := time.Now()
	first, err := inventory.ResolveReferenceNumber(context.Background(), nil, lookupFrom(nil), next, now)
	require.NoError(t, err)
	second, err := inventory.ResolveReferenceNumber(context.Background(), nil, lookupFrom(nil), next, now)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Regexp(t, adjPattern, first)
	assert.Regexp(t, adjPattern, second)
	assert.True(t, strings.HasPrefix(first, "ADJ-"+now.UTC().Format("20060102")+"-"))
}

func TestResolveReferenceNumber_ErrorDeSecuencia(t *testing.T) {
	boom := errors.New("conexión perdida")
	next := func(context.Context) (int64, error) { return 0, boom }
	_, err := inventory.ResolveReferenceNumber(context.Background(), nil, lookupFrom(nil), next, time.Now())
	assert.ErrorIs(t, err, boom)
}

func TestFormatReference_TruncaA255(t *testing.T) {
	ref := inventory.FormatReference(strings.Repeat("X", 300), time.Now(), 1)
	assert.Len(t, ref, 255)
}

func TestResolveStockInReference_UsaDocumentoDelProveedor(t *testing.T) {
	ref, err := inventory.ResolveStockInReference(context.Background(), "  FAC-778 ", counter(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "FAC-778", ref)
}

func TestResolveStockInReference_GeneraPrefijoIN(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	ref, err := inventory.ResolveStockInReference(context.Background(), "", counter(), now)
	require.NoError(t, err)
	assert.Equal(t, "IN-20240701-1", ref)
}
