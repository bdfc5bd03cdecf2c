package halfedge

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Option configures a Converter, TopologyEditor or Exporter.
type Option func(*options)

type options struct {
	logger           *log.Logger
	verify           bool
	placeholderNorm  mgl64.Vec3
	placeholderColor mgl64.Vec3
}

func defaultOptions() options {
	return options{
		verify:           true,
		placeholderNorm:  mgl64.Vec3{1, 0, 0},
		placeholderColor: mgl64.Vec3{1, 1, 1},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the instance logger, falling back to the package one.
func (o *options) log() *log.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithLogger sets the logger for one instance instead of the package logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithVerify controls whether Convert and SmoothVertex run IntegrityCheck
// on their result. It is on by default.
func WithVerify(verify bool) Option {
	return func(o *options) {
		o.verify = verify
	}
}

// WithPlaceholderAttributes sets the normal and color the exporter writes
// for every vertex.
func WithPlaceholderAttributes(normal, color mgl64.Vec3) Option {
	return func(o *options) {
		o.placeholderNorm = normal
		o.placeholderColor = color
	}
}
