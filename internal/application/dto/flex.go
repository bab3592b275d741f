package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexInt entero que acepta número JSON, string numérico, "" o null (estos dos como 0).
// Los formularios de la consola envían los ids y cantidades tal como salen de los inputs.
type FlexInt int64

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("entero inválido %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entero inválido %s", string(b))
	}
	*f = FlexInt(n)
	return nil
}

// Ptr devuelve nil para 0 (campo ausente).
func (f FlexInt) Ptr() *int64 {
	if f == 0 {
		return nil
	}
	v := int64(f)
	return &v
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime fecha que acepta RFC3339, datetime-local ("2006-01-02T15:04") o solo fecha.
// Vacío o null dejan el valor en cero. Los formatos sin zona quedan con Floating en true
// hasta que Localize los interpreta en la zona de la tienda.
type FlexTime struct {
	time.Time
	Floating bool
}

// Localize reinterpreta una hora sin zona como hora de pared en loc.
// Con zona explícita, valor cero o loc nil no hace nada.
func (f *FlexTime) Localize(loc *time.Location) {
	if !f.Floating || loc == nil || f.Time.IsZero() {
		return
	}
	t := f.Time
	f.Time = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	f.Floating = false
}

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	f.Floating = false
	if bytes.Equal(b, []byte("null")) {
		f.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida %s", string(b))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		f.Time = time.Time{}
		return nil
	}
	for _, layout := range flexTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			f.Floating = layout != time.RFC3339Nano
			return nil
		}
	}
	return fmt.Errorf("fecha inválida %q", s)
}
