package services

import (
	"time"

	"restaurante360/constants"
	"restaurante360/services/logger"
	"restaurante360/services/notification"

	"gorm.io/gorm"
)

// Options carries the dependencies shared by every service.
type Options struct {
	DB        *gorm.DB
	Logger    logger.Logger
	Cache     *Cache
	Publisher notification.Publisher
	Pusher    notification.Pusher
	Clock     func() time.Time
	Location  *time.Location
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.Nop{}
	}
	if o.Publisher == nil {
		o.Publisher = notification.NopPublisher{}
	}
	if o.Pusher == nil {
		o.Pusher = notification.NopPusher{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// now returns the current time in the business timezone.
func (o Options) now() time.Time {
	return o.Clock().In(o.Location)
}

func (o Options) today() string {
	return o.now().Format(constants.DateLayout)
}

// publish sends a live update. Delivery failures never fail the write that
// produced the event.
func (o Options) publish(evt notification.Event) {
	if err := o.Publisher.Publish(evt); err != nil {
		o.Logger.Error("publish %s/%s %s: %v", evt.Collection, evt.Action, evt.ID, err)
	}
}

// Session is the authenticated caller of a request.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

func (s *Session) IsManager() bool {
	return s != nil && constants.IsManagerRole(s.Role)
}
