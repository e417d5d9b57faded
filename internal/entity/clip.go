package entity

import "time"

// Clip is a short video entry with no business rules beyond its lifecycle.
type Clip struct {
	ID          string
	Title       string
	Description string
	URL         string
	PublishedAt time.Time
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// Assign sets the identifier and the creation timestamps of a new clip.
func (c *Clip) Assign(id string, now time.Time) {
	c.ID = id
	c.PublishedAt = now
	c.CreatedAt = now
	c.ModifiedAt = now
}

// Apply copies the mutable fields of src into c and marks it as modified.
func (c *Clip) Apply(src *Clip, now time.Time) {
	c.Title = src.Title
	c.Description = src.Description
	c.URL = src.URL
	c.ModifiedAt = NextModifiedAt(c.ModifiedAt, now)
}
