package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

func TestFlexInt_AceptaFormatosDelFormulario(t *testing.T) {
	cases := map[string]int64{
		`12`:    12,
		`"12"`:  12,
		`" 7 "`: 7,
		`""`:    0,
		`null`:  0,
		`"-3"`:  -3,
	}
	for raw, want := range cases {
		var f dto.FlexInt
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.Equal(t, want, int64(f), raw)
	}
}

func TestFlexInt_Invalido(t *testing.T) {
	var f dto.FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"doce"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &f))
}

func TestFlexInt_PtrCeroEsNil(t *testing.T) {
	assert.Nil(t, dto.FlexInt(0).Ptr())
	p := dto.FlexInt(9).Ptr()
	require.NotNil(t, p)
	assert.Equal(t, int64(9), *p)
}

func TestFlexTime_Layouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-05T10:30:00Z"`:      time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		`"2024-03-05T10:30"`:          time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		`"2024-03-05 10:30:15"`:       time.Date(2024, 3, 5, 10, 30, 15, 0, time.UTC),
		`"2024-03-05"`:                time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		`"2024-03-05T10:30:00-05:00"`: time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var f dto.FlexTime
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.True(t, want.Equal(f.Time), "%s => %s", raw, f.Time)
	}
}

func TestFlexTime_VacioQuedaEnCero(t *testing.T) {
	var req dto.CreateStockOutRequest
	require.NoError(t, json.Unmarshal([]byte(`{"stock_out_date":"","employee_id":"4"}`), &req))
	assert.True(t, req.StockOutDate.IsZero())
	assert.EqualValues(t, 4, req.EmployeeID)

	var f dto.FlexTime
	assert.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &f))
}

func TestFlexTime_LocalizeUsaZonaDeLaTienda(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)

	var local dto.FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T09:00"`), &local))
	assert.True(t, local.Floating)
	local.Localize(manila)
	assert.False(t, local.Floating)
	assert.True(t, time.Date(2024, 3, 5, 1, 0, 0, 0, time.UTC).Equal(local.Time), "09:00 en Manila es 01:00 UTC")

	var zoned dto.FlexTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T09:00:00Z"`), &zoned))
	assert.False(t, zoned.Floating)
	zoned.Localize(manila)
	assert.True(t, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC).Equal(zoned.Time), "la zona explícita se respeta")

	var empty dto.FlexTime
	empty.Localize(manila)
	assert.True(t, empty.IsZero())
}
