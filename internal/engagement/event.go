package engagement

import (
	"fmt"
	"time"
)

type EventType string

const (
	Like  EventType = "like"
	Share EventType = "share"
)

// DeviceWeb is the only device type this client reports.
const DeviceWeb = "web"

// Event is the engagement payload posted for a like or share. Reading time and
// scroll depth are never measured and are always zero.
type Event struct {
	ArticleID          string    `json:"article_id"`
	EventType          EventType `json:"event_type"`
	SessionID          string    `json:"session_id"`
	DeviceType         string    `json:"device_type"`
	ReadingTimeSeconds int       `json:"reading_time_seconds"`
	ScrollDepth        float64   `json:"scroll_depth"`
}

// Identity is who the event is sent on behalf of. Both fields may be empty.
type Identity struct {
	Token  string
	UserID string
}

// NewEvent builds an event stamped with a timestamp-based session id. The id
// is not stable across events.
func NewEvent(eventType EventType, articleID string, now time.Time) Event {
	return Event{
		ArticleID:  articleID,
		EventType:  eventType,
		SessionID:  fmt.Sprintf("session_%d", now.UnixMilli()),
		DeviceType: DeviceWeb,
	}
}
