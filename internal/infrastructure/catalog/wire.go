package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"chronova/internal/domain/entity"
)

// wireNumber accepts JSON numbers, numeric strings and null. Anything else is
// treated as absent instead of failing the whole payload; integers outside the
// int range are clamped to it.
type wireNumber struct {
	decimal.NullDecimal
}

func (n *wireNumber) UnmarshalJSON(data []byte) error {
	if err := n.NullDecimal.UnmarshalJSON(data); err != nil {
		n.NullDecimal = decimal.NullDecimal{}
	}
	return nil
}

func (n wireNumber) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Decimal.InexactFloat64()
}

func (n wireNumber) Int() int {
	if !n.Valid {
		return 0
	}
	switch {
	case n.Decimal.GreaterThan(maxInt):
		return math.MaxInt
	case n.Decimal.LessThan(minInt):
		return math.MinInt
	}
	return int(n.Decimal.IntPart())
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt)
	minInt = decimal.NewFromInt(math.MinInt)
)

// wireTime accepts the timestamp layouts known to entity.ParseTimestamp and
// unix epochs in seconds or milliseconds.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Time = entity.ParseTimestamp(s)
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	epoch := d.IntPart()
	if epoch > 1e12 {
		t.Time = time.UnixMilli(epoch).UTC()
	} else {
		t.Time = time.Unix(epoch, 0).UTC()
	}
	return nil
}

type productDTO struct {
	ID          entity.RefID `json:"id"`
	CategoryID  entity.RefID `json:"category_id"`
	BrandID     entity.RefID `json:"brand_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Price       wireNumber   `json:"price"`
	SoldCount   wireNumber   `json:"sold_count"`
	CreatedAt   wireTime     `json:"created_at"`
	UpdatedAt   wireTime     `json:"updated_at"`
}

func (dto productDTO) toEntity() *entity.Product {
	return &entity.Product{
		ID:          dto.ID,
		CategoryID:  dto.CategoryID,
		BrandID:     dto.BrandID,
		Name:        dto.Name,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		Price:       dto.Price.Float(),
		SoldCount:   dto.SoldCount.Int(),
		CreatedAt:   dto.CreatedAt.Time,
		UpdatedAt:   dto.UpdatedAt.Time,
	}
}

type categoryDTO struct {
	ID   entity.RefID `json:"id"`
	Name string       `json:"name"`
	Slug string       `json:"slug"`
}

type brandDTO struct {
	ID      entity.RefID `json:"id"`
	Name    string       `json:"name"`
	LogoURL string       `json:"logo_url"`
}

// unwrapEnvelope strips {"data": ...} wrappers. Backends answer either with
// the bare array or with one or two levels of envelope (the second one is a
// paginator).
func unwrapEnvelope(body []byte) []byte {
	for i := 0; i < 2; i++ {
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return trimmed
		}
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return trimmed
		}
		data := bytes.TrimSpace(envelope.Data)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			return trimmed
		}
		body = data
	}
	return bytes.TrimSpace(body)
}
