// Package entity defines the entities and errors used in the application.
// It includes the Video and Clip resources, the pagination types shared by the
// use cases and the repositories, and the error kinds returned by the core.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Video represents a published video and its popularity counter.
type Video struct {
	ID          uuid.UUID // ID is generated on creation and never changes.
	Title       string    // Title is required and can't be modified after creation.
	Description string    // Description is required.
	URL         string    // URL points to the video content.
	Likes       int64     // Likes is the number of times the video has been liked.
	PublishedAt time.Time // PublishedAt is the timestamp when the video was published.
	CreatedAt   time.Time // CreatedAt is the timestamp when the video was created.
	ModifiedAt  time.Time // ModifiedAt is the timestamp of the last successful mutation.
}

// NextModifiedAt returns now, or the instant one microsecond after prev when
// now does not come after it, so modification times strictly increase.
func NextModifiedAt(prev, now time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}
