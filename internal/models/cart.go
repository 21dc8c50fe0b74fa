package models

import "time"

// Cart is the persisted shopping cart: the student's selection and blockout
// windows, keyed by the content hash of the catalog they were chosen from.
// A hash mismatch on load invalidates the cart.
type Cart struct {
	Hash      string     `json:"hash"`
	Selection Selection  `json:"selection"`
	Blockouts []Blockout `json:"blockouts"`
	SavedAt   time.Time  `json:"savedAt"`
}
