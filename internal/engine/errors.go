package engine

import (
	"errors"

	"github.com/ShayCichocki/cellgrid/internal/slot"
)

var (
	// ErrNoTarget is returned by Mount without a target.
	ErrNoTarget = errors.New("no mount target")

	// ErrNoScheduler is returned by Mount without a scheduler.
	ErrNoScheduler = errors.New("no scheduler")

	// ErrTargetPopulated is returned by Mount when the target already holds
	// content. The engine never draws over a populated target.
	ErrTargetPopulated = errors.New("mount target is not empty")

	// ErrBadMetrics is returned when the target reports a non-positive
	// cell size or a grid smaller than one cell.
	ErrBadMetrics = errors.New("invalid target metrics")

	// ErrNoRoot is returned by Flush before a root render function is set.
	ErrNoRoot = errors.New("no root render function")

	// ErrNilRender is returned when a nil RenderFunc is registered.
	ErrNilRender = errors.New("nil render function")

	// ErrUnknownPlaceholder is returned when a node's text contains a
	// placeholder that the node did not register.
	ErrUnknownPlaceholder = errors.New("placeholder not registered by this node")

	// ErrLateRegistration is returned when a child is registered after the
	// node's render function returned.
	ErrLateRegistration = slot.ErrLateRegistration

	// ErrIrregularShape is returned when a child's placeholder runs do not
	// form a rectangle.
	ErrIrregularShape = slot.ErrIrregularShape
)
