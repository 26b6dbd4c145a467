package model

import "strconv"

// Item is the domain model for a todo entry.
// An Item is a value: once the store hands it out, nothing can change it.
// To "edit" a title, remove the item and insert a new one.
type Item struct {
	ID    uint64 `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Label is the short form used in CLI output, e.g. "#3 Buy milk".
func (it Item) Label() string {
	return "#" + strconv.FormatUint(it.ID, 10) + " " + it.Title
}

// IndexOf returns the position of the item with the given id, or -1.
// The search runs from the front.
func IndexOf(items []Item, id uint64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
