package models

// Item represents a single product line inside a wishlist
type Item struct {
	ID         int64   `json:"id" db:"id"`
	WishlistID int64   `json:"wishlist_id" db:"wishlist_id"`
	Name       string  `json:"name" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	Category   string  `json:"category" db:"category"`
	Note       string  `json:"note" db:"note"`
	Price      float64 `json:"price" db:"price"`
	IsFavorite bool    `json:"is_favorite" db:"is_favorite"`
}

type itemPayload struct {
	Name       *string  `json:"name" validate:"required,min=1,max=100"`
	Quantity   *int     `json:"quantity" validate:"required,gte=0"`
	Category   *string  `json:"category" validate:"required,min=1,max=100"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	Note       *string  `json:"note" validate:"omitempty,max=1000"`
	IsFavorite *bool    `json:"is_favorite"`
}

// Deserialize populates the item from a JSON object. Note and is_favorite are
// optional and default to "" and false. The id and wishlist_id keys are
// ignored; they are owned by the store and the request path.
//
// The item is left untouched when an error is returned.
func (i *Item) Deserialize(data []byte) error {
	var p itemPayload
	fieldErrs, err := decodePayload(data, &p)
	if err != nil {
		return NewValidationError("Invalid Item", err)
	}
	if len(fieldErrs) > 0 {
		return &DataValidationError{Message: "Invalid Item", Fields: fieldErrs}
	}

	i.Name = *p.Name
	i.Quantity = *p.Quantity
	i.Category = *p.Category
	i.Price = *p.Price
	i.Note = ""
	if p.Note != nil {
		i.Note = *p.Note
	}
	i.IsFavorite = p.IsFavorite != nil && *p.IsFavorite

	return nil
}
