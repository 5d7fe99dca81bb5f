package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptCart is returned when a persisted cart cannot be used as is.
var ErrCorruptCart = errors.New("corrupt cart data")

// EncodeItems serializes items as the persisted JSON array
// [{"id","name","price","img","quantity"}, ...]. A nil slice encodes as [].
func EncodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal cart items: %w", err)
	}
	return data, nil
}

// DecodeItems parses a persisted cart. JSON null decodes as an empty cart.
// Entries with an empty id, a quantity below 1, an unusable price or a
// repeated id make the whole value corrupt.
func DecodeItems(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptCart, err)
	}
	if items == nil {
		return []LineItem{}, nil
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrCorruptCart, i)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q has quantity %d", ErrCorruptCart, item.ID, item.Quantity)
		}
		if SanitizePrice(item.Price) != item.Price {
			return nil, fmt.Errorf("%w: item %q has price %v", ErrCorruptCart, item.ID, item.Price)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrCorruptCart, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}
