package services

import "time"

type serviceOptions struct {
	now               func() time.Time
	location          *time.Location
	activityLimit     int
	activitySinceDays int
}

// ServiceOption is a functional option shared by the services
type ServiceOption func(*serviceOptions)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the business time zone used to decide what "today" is
func WithLocation(loc *time.Location) ServiceOption {
	return func(o *serviceOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithActivityDefaults sets the feed limit and window used when a request omits them
func WithActivityDefaults(limit, sinceDays int) ServiceOption {
	return func(o *serviceOptions) {
		if limit > 0 {
			o.activityLimit = limit
		}
		if sinceDays > 0 {
			o.activitySinceDays = sinceDays
		}
	}
}

func newServiceOptions(options []ServiceOption) serviceOptions {
	o := serviceOptions{
		now:               time.Now,
		location:          time.UTC,
		activityLimit:     50,
		activitySinceDays: 30,
	}
	for _, option := range options {
		option(&o)
	}
	return o
}

// today is the current instant in the business time zone.
func (o serviceOptions) today() time.Time {
	return o.now().In(o.location)
}
