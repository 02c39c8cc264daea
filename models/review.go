package models

import "time"

// Review is one entry in the shared per-item review list.
type Review struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	ItemID       int64     `json:"itemId"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	AuthorLabel  string    `json:"authorLabel"`
	CreatedAt    time.Time `json:"createdAt"`
	HelpfulCount int       `json:"helpfulCount"`
}

// MyReview is the caller's own last review for an item, kept separately so the
// edit form can be pre-filled.
type MyReview struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// ReviewSummary aggregates the shared list for display.
type ReviewSummary struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}
