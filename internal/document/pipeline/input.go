// Package pipeline turns untrusted field maps into validated document
// models and drives generation through an explicit state machine.
package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/internal/money"
)

// Form is an untrusted field map, typically decoded JSON or NLU output.
// Extractors distinguish absent fields from malformed ones: absence is a
// MissingField only when the caller requires the field, a present value
// that cannot be read is always an InvalidFormat.
type Form map[string]any

// lookup treats nil and blank strings as absent.
func (f Form) lookup(key string) (any, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func (f Form) String(key string) (string, bool) {
	v, ok := f.lookup(key)
	if !ok {
		return "", false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s), true
	}
	return fmt.Sprint(v), true
}

func (f Form) RequiredString(key, message string) (string, error) {
	s, ok := f.String(key)
	if !ok {
		return "", domain.MissingField(key, message)
	}
	return s, nil
}

func (f Form) StringOr(key, fallback string) string {
	if s, ok := f.String(key); ok {
		return s
	}
	return fallback
}

func (f Form) Decimal(key string) (decimal.Decimal, bool, error) {
	v, ok := f.lookup(key)
	if !ok {
		return decimal.Zero, false, nil
	}
	d, err := money.FromInput(v)
	if err != nil {
		return decimal.Zero, false, domain.InvalidFormat(key,
			fmt.Sprintf("le champ %s doit être un nombre", key))
	}
	return d, true, nil
}

func (f Form) RequiredDecimal(key, message string) (decimal.Decimal, error) {
	d, ok, err := f.Decimal(key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, domain.MissingField(key, message)
	}
	return d, nil
}

func (f Form) DecimalOr(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	d, ok, err := f.Decimal(key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return fallback, nil
	}
	return d, nil
}

func (f Form) Date(key string) (domain.Date, bool, error) {
	s, ok := f.String(key)
	if !ok {
		return domain.Date{}, false, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, false, domain.InvalidFormat(key,
			fmt.Sprintf("le champ %s doit être une date au format AAAA-MM-JJ", key))
	}
	return d, true, nil
}

func (f Form) RequiredDate(key, message string) (domain.Date, error) {
	d, ok, err := f.Date(key)
	if err != nil {
		return domain.Date{}, err
	}
	if !ok {
		return domain.Date{}, domain.MissingField(key, message)
	}
	return d, nil
}

func (f Form) DateOr(key string, fallback domain.Date) (domain.Date, error) {
	d, ok, err := f.Date(key)
	if err != nil {
		return domain.Date{}, err
	}
	if !ok {
		return fallback, nil
	}
	return d, nil
}

func (f Form) Int(key string) (int, bool, error) {
	v, ok := f.lookup(key)
	if !ok {
		return 0, false, nil
	}

	invalid := domain.InvalidFormat(key, fmt.Sprintf("le champ %s doit être un nombre entier", key))
	switch value := v.(type) {
	case int:
		return value, true, nil
	case int64:
		return int(value), true, nil
	case float64:
		// JSON numbers decode as float64; reject fractional values.
		if value != float64(int(value)) {
			return 0, false, invalid
		}
		return int(value), true, nil
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0, false, invalid
		}
		return int(n), true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, false, invalid
		}
		return n, true, nil
	default:
		return 0, false, invalid
	}
}

func (f Form) IntOr(key string, fallback int) (int, error) {
	n, ok, err := f.Int(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	return n, nil
}

// List extracts a list of sub-forms.
func (f Form) List(key string) ([]Form, bool, error) {
	v, ok := f.lookup(key)
	if !ok {
		return nil, false, nil
	}

	invalid := domain.InvalidFormat(key, fmt.Sprintf("le champ %s doit être une liste d'objets", key))
	switch value := v.(type) {
	case []Form:
		return value, true, nil
	case []map[string]any:
		forms := make([]Form, 0, len(value))
		for _, m := range value {
			forms = append(forms, Form(m))
		}
		return forms, true, nil
	case []any:
		forms := make([]Form, 0, len(value))
		for _, item := range value {
			m, isMap := item.(map[string]any)
			if !isMap {
				return nil, false, invalid
			}
			forms = append(forms, Form(m))
		}
		return forms, true, nil
	default:
		return nil, false, invalid
	}
}
