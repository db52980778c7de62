package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"bookstore/internal/httpx"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrInvalidPrice is returned when a price is not a decimal with at most two fraction digits.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
)

// NameMaxLength bounds Book.Name.
const NameMaxLength = 128

// Book represents a book entity.
type Book struct {
	ID          string     `json:"id"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Name        string     `json:"name"`
	Type        Type       `json:"type"`
	PublishDate Date       `json:"publish_date"`
	Price       Money      `json:"price"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GetID implements crud.Entity.
func (b Book) GetID() string { return b.ID }

// Canonical concatenates id, name, type, publish date and price with no
// separator. It is the per-row input of the tenant book hash.
func (b Book) Canonical() string {
	var sb strings.Builder
	sb.WriteString(b.ID)
	sb.WriteString(b.Name)
	sb.WriteString(string(b.Type))
	sb.WriteString(b.PublishDate.String())
	sb.WriteString(b.Price.String())
	return sb.String()
}

// Type is the book category. Values are stored and rendered by name.
type Type string

const (
	TypeUndefined      Type = "Undefined"
	TypeAdventure      Type = "Adventure"
	TypeBiography      Type = "Biography"
	TypeDystopia       Type = "Dystopia"
	TypeFantastic      Type = "Fantastic"
	TypeFiction        Type = "Fiction"
	TypeHorror         Type = "Horror"
	TypeScience        Type = "Science"
	TypeScienceFiction Type = "ScienceFiction"
	TypePoetry         Type = "Poetry"
)

// Types lists every known Type.
var Types = []Type{
	TypeUndefined, TypeAdventure, TypeBiography, TypeDystopia, TypeFantastic,
	TypeFiction, TypeHorror, TypeScience, TypeScienceFiction, TypePoetry,
}

// IsValid reports whether t is a known Type.
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Money is an amount in hundredths (cents).
type Money int64

// NewMoney builds an amount from whole units and cents. cents carries the sign
// of units.
func NewMoney(units, cents int64) Money {
	if units < 0 {
		return Money(units*100 - cents)
	}
	return Money(units*100 + cents)
}

// String renders m with exactly two fraction digits, e.g. "14.50".
func (m Money) String() string {
	sign := ""
	abs := uint64(m)
	if m < 0 {
		sign = "-"
		// unsigned negation also covers math.MinInt64
		abs = -abs
	}
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}

// ParseMoney parses a plain decimal with at most two fraction digits.
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(raw, "-"):
		neg, raw = true, raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}

	whole, frac, hasDot := strings.Cut(raw, ".")
	if whole == "" || !isDigits(whole) || (hasDot && (frac == "" || !isDigits(frac))) || len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidPrice, s)
	}
	cents := int64(0)
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}

	v := units*100 + cents
	if neg {
		v = -v
	}
	return Money(v), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// MarshalJSON renders m as a JSON number with two fraction digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	v, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// DateLayout is the textual form of Date.
const DateLayout = "2006-01-02"

// Date is a calendar day in UTC.
type Date struct {
	time.Time
}

// NewDate returns the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t}, nil
}

// String renders d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MaxPrice is the largest price the books table stores (numeric(12,2)).
const MaxPrice Money = 999999999999

// CreateUpdateInput is the payload for creating or replacing a book.
// Price bounds are in cents and must track MaxPrice.
type CreateUpdateInput struct {
	Name        string `json:"name" validate:"required,notblank,max=128"`
	Type        Type   `json:"type" validate:"omitempty,book_type"`
	PublishDate Date   `json:"publish_date" validate:"required"`
	Price       Money  `json:"price" validate:"gte=0,lte=999999999999"`
}

// ApplyInput copies in onto b. An empty type becomes TypeUndefined.
func ApplyInput(in CreateUpdateInput, b *Book) {
	b.Name = strings.TrimSpace(in.Name)
	b.Type = in.Type
	if b.Type == "" {
		b.Type = TypeUndefined
	}
	b.PublishDate = in.PublishDate
	b.Price = in.Price
}

// GetHashInput selects the tenant whose books are hashed. nil is the host scope.
type GetHashInput struct {
	TenantID *uuid.UUID
}

func init() {
	httpx.RegisterValidation("book_type", func(fl validator.FieldLevel) bool {
		return Type(fl.Field().String()).IsValid()
	})
	httpx.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})
}
