package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
)

// ImageList is stored as a JSONB array of {public_id, url}.
type ImageList []asset.Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *ImageList) Scan(src any) error {
	return scanJSON(src, l)
}

// ReviewList is stored as a JSONB array of embedded reviews.
type ReviewList []domainProduct.Review

func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *ReviewList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
}
