package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// NearEarthObject is a near-Earth object (NEO).
//
// Designation is the unique primary key. Name is empty for unnamed objects.
// Diameter is NaN when the diameter is unknown.
type NearEarthObject struct {
	Designation string
	Name        string
	Diameter    float64
	Hazardous   bool

	// Approaches is populated once by the database constructor.
	Approaches []*CloseApproach
}

// Named reports whether the NEO has an IAU name.
func (n *NearEarthObject) Named() bool {
	return n.Name != ""
}

// HasDiameter reports whether the diameter is known.
func (n *NearEarthObject) HasDiameter() bool {
	return !math.IsNaN(n.Diameter)
}

// FullName returns the designation followed by the name in parentheses, if any.
func (n *NearEarthObject) FullName() string {
	if n.Named() {
		return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
	}
	return n.Designation
}

func (n *NearEarthObject) String() string {
	var b strings.Builder
	b.WriteString("NEO ")
	b.WriteString(n.FullName())
	if n.HasDiameter() {
		fmt.Fprintf(&b, " has a diameter of %.3f km and", n.Diameter)
	}
	if n.Hazardous {
		b.WriteString(" is potentially hazardous")
	} else {
		b.WriteString(" is not potentially hazardous")
	}
	fmt.Fprintf(&b, " with %d close approach", len(n.Approaches))
	if len(n.Approaches) != 1 {
		b.WriteString("es")
	}
	b.WriteString(".")
	return b.String()
}

// CloseApproach is a close approach to Earth by an NEO.
//
// Designation is the foreign key as read from the source data. NEO is nil
// until the database links the approach, and stays nil when no NEO with that
// designation exists.
type CloseApproach struct {
	Designation string
	Time        time.Time // UTC
	Distance    float64   // au
	Velocity    float64   // km/s

	NEO *NearEarthObject
}

// Linked reports whether the approach references a NEO.
func (c *CloseApproach) Linked() bool {
	return c.NEO != nil
}

// LinkedNEO returns the referenced NEO or ErrNoLinkedNEO.
func (c *CloseApproach) LinkedNEO() (*NearEarthObject, error) {
	if c.NEO == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLinkedNEO, c.Designation)
	}
	return c.NEO, nil
}

// TimeString returns the approach time in the canonical output layout.
func (c *CloseApproach) TimeString() string {
	return FormatTime(c.Time)
}

func (c *CloseApproach) String() string {
	name := c.Designation
	if c.NEO != nil {
		name = c.NEO.FullName()
	}
	return fmt.Sprintf("On %s, %s approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		c.TimeString(), name, c.Distance, c.Velocity)
}
