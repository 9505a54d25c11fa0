package chart

import (
	"math"
	"strconv"
	"strings"
)

// Point is a Cartesian coordinate in SVG's y-down space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PolarToCartesian converts an angle in degrees around (cx, cy) to a point.
// 0° points along +x and angles grow clockwise on screen.
func PolarToCartesian(cx, cy, radius, angleDegrees float64) Point {
	rad := angleDegrees * math.Pi / 180
	return Point{
		X: cx + radius*math.Cos(rad),
		Y: cy + radius*math.Sin(rad),
	}
}

// LargeArc reports whether the arc between two angles takes the long way round.
func LargeArc(startAngle, endAngle float64) bool {
	return endAngle-startAngle > 180
}

// Op is a path command.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpArc   Op = 'A'
	OpClose Op = 'Z'
)

// Segment is one path command. Arc segments keep their circle parameters so
// the path can be flattened without solving the SVG endpoint parameterization.
type Segment struct {
	Op       Op
	To       Point
	Radius   float64
	LargeArc bool
	Sweep    bool

	Center    Point
	FromAngle float64
	ToAngle   float64
}

// Path is an outline made of segments.
type Path []Segment

// String encodes the path as an SVG "d" attribute.
func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, s := range p {
		switch s.Op {
		case OpMove, OpLine:
			parts = append(parts, string(s.Op)+" "+num(s.To.X)+" "+num(s.To.Y))
		case OpArc:
			parts = append(parts, strings.Join([]string{
				"A", num(s.Radius), num(s.Radius), "0", flag(s.LargeArc), flag(s.Sweep), num(s.To.X), num(s.To.Y),
			}, " "))
		case OpClose:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

// arcFlattenStep is the maximum angular step, in degrees, used when
// approximating arcs with straight segments.
const arcFlattenStep = 3.0

// Flatten approximates the path with a polygon.
func (p Path) Flatten() []Point {
	var pts []Point
	for _, s := range p {
		switch s.Op {
		case OpMove, OpLine:
			pts = append(pts, s.To)
		case OpArc:
			sweep := s.ToAngle - s.FromAngle
			steps := int(math.Ceil(math.Abs(sweep) / arcFlattenStep))
			for i := 1; i <= steps; i++ {
				a := s.FromAngle + sweep*float64(i)/float64(steps)
				pts = append(pts, PolarToCartesian(s.Center.X, s.Center.Y, s.Radius, a))
			}
			if steps == 0 {
				pts = append(pts, s.To)
			}
		}
	}
	return pts
}

// ArcPath outlines the annulus sector between two angles. The outer arc runs
// from endAngle back to startAngle, a line drops to the inner radius, and the
// inner arc returns to endAngle before closing. The sweep flags are fixed so
// the enclosed region is always the sector between the angles.
func ArcPath(center Point, startAngle, endAngle, outerRadius, innerRadius float64) Path {
	start := PolarToCartesian(center.X, center.Y, outerRadius, endAngle)
	end := PolarToCartesian(center.X, center.Y, outerRadius, startAngle)
	innerStart := PolarToCartesian(center.X, center.Y, innerRadius, endAngle)
	innerEnd := PolarToCartesian(center.X, center.Y, innerRadius, startAngle)
	large := LargeArc(startAngle, endAngle)

	return Path{
		{Op: OpMove, To: start},
		{
			Op: OpArc, To: end, Radius: outerRadius, LargeArc: large, Sweep: false,
			Center: center, FromAngle: endAngle, ToAngle: startAngle,
		},
		{Op: OpLine, To: innerEnd},
		{
			Op: OpArc, To: innerStart, Radius: innerRadius, LargeArc: large, Sweep: true,
			Center: center, FromAngle: startAngle, ToAngle: endAngle,
		},
		{Op: OpClose},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
