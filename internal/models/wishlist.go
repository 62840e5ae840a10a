package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wishlist represents a named collection of items a customer intends to buy
// later. It exclusively owns its items: deleting a wishlist deletes them.
type Wishlist struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	UpdatedTime *time.Time `json:"updated_time" db:"updated_time"`
	Note        string     `json:"note" db:"note"`
	IsFavorite  bool       `json:"is_favorite" db:"is_favorite"`
	Items       []Item     `json:"items"`
}

type wishlistPayload struct {
	Name        *string           `json:"name" validate:"required,min=1,max=100"`
	UpdatedTime *string           `json:"updated_time"`
	Note        *string           `json:"note" validate:"omitempty,max=1000"`
	IsFavorite  *bool             `json:"is_favorite"`
	Items       []json.RawMessage `json:"items"`
}

// MarshalJSON renders updated_time as an HTTP-date and always emits items as
// a list.
func (w Wishlist) MarshalJSON() ([]byte, error) {
	items := w.Items
	if items == nil {
		items = []Item{}
	}

	var updated *string
	if w.UpdatedTime != nil {
		s := FormatHTTPTime(*w.UpdatedTime)
		updated = &s
	}

	return json.Marshal(struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		UpdatedTime *string `json:"updated_time"`
		Note        string  `json:"note"`
		IsFavorite  bool    `json:"is_favorite"`
		Items       []Item  `json:"items"`
	}{
		ID:          w.ID,
		Name:        w.Name,
		UpdatedTime: updated,
		Note:        w.Note,
		IsFavorite:  w.IsFavorite,
		Items:       items,
	})
}

// Deserialize populates the wishlist from a JSON object, including every
// entry of the optional items list, which is appended to w.Items. All
// problems found in the wishlist and its items are reported together.
//
// The wishlist is left untouched when an error is returned.
func (w *Wishlist) Deserialize(data []byte) error {
	var p wishlistPayload
	fieldErrs, err := decodePayload(data, &p)
	if err != nil {
		return NewValidationError("Invalid Wishlist", err)
	}

	var updated *time.Time
	if p.UpdatedTime != nil {
		t, err := ParseTimestamp(*p.UpdatedTime)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{
				Field: "updated_time",
				Msg:   "updated_time must be an HTTP-date or RFC 3339 timestamp",
			})
		} else {
			updated = &t
		}
	}

	items := make([]Item, 0, len(p.Items))
	for idx, raw := range p.Items {
		var item Item
		if err := item.Deserialize(raw); err != nil {
			fieldErrs = append(fieldErrs, prefixed(fmt.Sprintf("items[%d]", idx), err)...)
			continue
		}
		items = append(items, item)
	}

	if len(fieldErrs) > 0 {
		return &DataValidationError{Message: "Invalid Wishlist", Fields: fieldErrs}
	}

	w.Name = *p.Name
	w.UpdatedTime = updated
	w.Note = ""
	if p.Note != nil {
		w.Note = *p.Note
	}
	w.IsFavorite = p.IsFavorite != nil && *p.IsFavorite
	w.Items = append(w.Items, items...)

	return nil
}

func prefixed(prefix string, err error) []FieldError {
	ve, ok := err.(*DataValidationError)
	if !ok || len(ve.Fields) == 0 {
		return []FieldError{{Field: prefix, Msg: fmt.Sprintf("%s must be an object", prefix)}}
	}

	out := make([]FieldError, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		out = append(out, FieldError{
			Field: prefix + "." + f.Field,
			Msg:   prefix + "." + f.Msg,
		})
	}
	return out
}
