package svgpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Grammar, reduced to the commands the flatmap writer emits (the full SVG
// path grammar also has H/V/S/Q/T/A, which are treated as unparsed data):
//
// svg-path:
//     wsp* moveto-drawto-command-groups? wsp*
// moveto-drawto-command-group:
//     moveto wsp* drawto-commands?
// drawto-command:
//     closepath | lineto | curveto
// moveto:
//     ( "M" | "m" ) wsp* coordinate-pair (comma-wsp? coordinate-pair)*
// closepath:
//     ("Z" | "z")
// lineto:
//     ( "L" | "l" ) wsp* coordinate-pair (comma-wsp? coordinate-pair)*
// curveto:
//     ( "C" | "c" ) wsp* curveto-argument (comma-wsp? curveto-argument)*
// curveto-argument:
//     coordinate-pair comma-wsp? coordinate-pair comma-wsp? coordinate-pair
// coordinate-pair:
//     coordinate comma-wsp? coordinate
// coordinate:
//     number (sign? integer or floating point, with optional exponent)
// comma-wsp:
//     (wsp+ comma? wsp*) | (comma wsp*)

type state struct {
	data     string
	index    int
	subPaths []*SubPath
	group    *SubPath
	currentX float64
	currentY float64
	relative bool
}

// SubPath is a single M-initiated run of drawing commands. X, Y is the
// initial pen position.
type SubPath struct {
	X, Y   float64
	DrawTo []*DrawTo
}

type Command string

const (
	ClosePath = "Z"
	LineTo    = "L"
	CurveTo   = "C"
)

// DrawTo is one drawing command. X, Y is the final pen position; X1, Y1 and
// X2, Y2 are the cubic control points, set for CurveTo only.
type DrawTo struct {
	Command Command
	X, Y    float64
	X1, Y1  float64
	X2, Y2  float64
}

// Parse parses a path data string.
func Parse(path string) ([]*SubPath, error) {
	s := &state{
		data:  path,
		index: 0,
	}
	err := s.parse()
	return s.subPaths, err
}

func (path *SubPath) StartPoint() (float64, float64) {
	return path.X, path.Y
}

// EndPoint returns the final pen position of the sub path.
func (path *SubPath) EndPoint() (float64, float64) {
	if len(path.DrawTo) > 0 {
		last := path.DrawTo[len(path.DrawTo)-1]
		return last.X, last.Y
	}
	return path.X, path.Y
}

func (s *state) parse() error {
	for {
		s.whitespace()

		c := s.peek()
		if c != 'M' && c != 'm' {
			break
		}

		err := s.parseMoveTo()
		if err != nil {
			return err
		}
		s.whitespace()
		err = s.parseDrawToCommands()
		if err != nil {
			return err
		}
	}

	s.whitespace()

	if s.index != len(s.data) {
		return fmt.Errorf("unparsed data: %q", s.data[s.index:])
	}

	return nil
}

// parseMoveTo parses one move to command
func (s *state) parseMoveTo() error {
	command := s.next()
	if command != 'M' && command != 'm' {
		return fmt.Errorf("expected \"M\" or \"m\", got %q", string(command))
	}
	s.relative = command == 'm'
	s.whitespace()

	x, y, err := s.parseCoordinatePair()
	if err != nil {
		return err
	}
	if s.relative {
		x += s.currentX
		y += s.currentY
	}
	s.currentX = x
	s.currentY = y

	// The move to command starts a new sub path group
	s.ensureSubPath()

	// Additional coordinate pairs after a move to are implicit line to commands.
	for {
		savedIndex := s.index
		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			// backtrack.
			s.index = savedIndex
			break
		}
		if s.relative {
			x += s.currentX
			y += s.currentY
		}
		s.currentX = x
		s.currentY = y
		s.group.DrawTo = append(s.group.DrawTo,
			&DrawTo{Command: LineTo, X: x, Y: y})
	}

	return nil
}

// ensureSubPath starts a new sub path if there isn't already one.
func (s *state) ensureSubPath() {
	if s.group == nil {
		s.group = &SubPath{X: s.currentX, Y: s.currentY}
		s.subPaths = append(s.subPaths, s.group)
	}
}

// parseDrawToCommands parses 0 or more draw to commands.
func (s *state) parseDrawToCommands() error {
	first := true
	for {
		if !first {
			s.whitespace()
		}
		first = false

		var err error

		c := s.peek()
		switch c {
		case 'L', 'l':
			err = s.parseLineTo()
		case 'C', 'c':
			err = s.parseCurveTo()
		case 'Z', 'z':
			err = s.parseClosePath()
		default:
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func (s *state) parseClosePath() error {
	c := s.next()
	if c != 'Z' && c != 'z' {
		return fmt.Errorf("expecting \"Z\" or \"z\", got %q", string(c))
	}
	s.group.DrawTo = append(s.group.DrawTo,
		&DrawTo{Command: ClosePath, X: s.group.X, Y: s.group.Y})
	s.currentX = s.group.X
	s.currentY = s.group.Y
	s.group = nil
	return nil
}

func (s *state) parseLineTo() error {
	c := s.next()
	if c != 'L' && c != 'l' {
		return fmt.Errorf("expecting \"L\" or \"l\", got %q", string(c))
	}
	s.relative = c == 'l'

	s.whitespace()

	s.ensureSubPath()

	first := true
	for {
		oldIndex := s.index
		if !first {
			s.commaWhitespace()
		}

		x, y, err := s.parseCoordinatePair()
		if err != nil {
			if !first {
				s.index = oldIndex
				return nil
			}
			return err
		}

		if s.relative {
			x += s.currentX
			y += s.currentY
		}
		s.group.DrawTo = append(s.group.DrawTo,
			&DrawTo{Command: LineTo, X: x, Y: y})
		s.currentX = x
		s.currentY = y

		first = false
	}
}

func (s *state) parseCurveTo() error {
	c := s.next()
	if c != 'C' && c != 'c' {
		return fmt.Errorf("expecting \"C\" or \"c\", got %q", string(c))
	}
	s.relative = c == 'c'

	s.whitespace()

	s.ensureSubPath()

	first := true
	for {
		oldIndex := s.index
		if !first {
			s.commaWhitespace()
		}

		x1, y1, err := s.parseCoordinatePair()
		if err != nil {
			if !first {
				s.index = oldIndex
				return nil
			}
			return err
		}

		s.commaWhitespace()
		x2, y2, err := s.parseCoordinatePair()
		if err != nil {
			return err
		}

		s.commaWhitespace()
		x, y, err := s.parseCoordinatePair()
		if err != nil {
			return err
		}

		if s.relative {
			x1 += s.currentX
			y1 += s.currentY
			x2 += s.currentX
			y2 += s.currentY
			x += s.currentX
			y += s.currentY
		}
		s.group.DrawTo = append(s.group.DrawTo,
			&DrawTo{Command: CurveTo, X: x, Y: y, X1: x1, Y1: y1, X2: x2, Y2: y2})
		s.currentX = x
		s.currentY = y

		first = false
	}
}

// parseCoordinatePair parses "coordinate comma-wsp? coordinate"
func (s *state) parseCoordinatePair() (float64, float64, error) {
	x, err := s.parseNumber()
	if err != nil {
		return 0, 0, err
	}
	s.commaWhitespace()
	y, err := s.parseNumber()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (s *state) parseNumber() (float64, error) {
	c := s.peek()
	if c == '+' || c == '-' {
		s.next()
		n, err := s.parseNonNegativeNumber()
		if c == '-' {
			n = -n
		}
		return n, err
	}
	return s.parseNonNegativeNumber()
}

func (s *state) parseNonNegativeNumber() (float64, error) {
	number := s.digitSequence()
	if number == "" {
		// Possible fractional constant starting with a decimal point
		c := s.next()
		if c != '.' {
			return 0, fmt.Errorf("expected a number, got %q", string(c))
		}
		number = "." + s.digitSequence()
		if number == "." {
			return 0, fmt.Errorf("expected a number, got only a \".\"")
		}
	} else {
		// Check for possible fractional constant
		c := s.peek()
		if c == '.' {
			s.next()
			number += "." + s.digitSequence()
		}
	}

	// Check for possible exponent
	c := s.peek()
	if c == 'E' || c == 'e' {
		s.next()
		sign := ""
		c = s.peek()
		if c == '+' || c == '-' {
			s.next()
			sign = string(c)
		}
		exponent := s.digitSequence()
		if exponent == "" {
			return 0, fmt.Errorf("expected an exponent, got %q", string(c))
		}
		number += "E" + sign + exponent
	}

	n, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *state) digitSequence() string {
	var sequence []byte
	for {
		c := s.peek()
		if '0' <= c && c <= '9' {
			sequence = append(sequence, c)
			s.next()
		} else {
			break
		}
	}
	return string(sequence)
}

// whitespace consumes "wsp*", and returns the number of bytes consumed
func (s *state) whitespace() int {
	count := 0
	for {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.next()
			count++
		default:
			return count
		}
	}
}

// commaWhitespace consumes an optional "(wsp+ comma? wsp*) | (comma wsp*)",
// and returns true if something was consumed
func (s *state) commaWhitespace() bool {
	if s.peek() == ',' {
		s.next()
		s.whitespace()
		return true
	}

	consumed := s.whitespace()
	if consumed > 0 {
		if s.peek() == ',' {
			s.next()
		}
		s.whitespace()
		return true
	}

	return false
}

// peek returns the next byte without consuming it, or 0 if at the end of stream
func (s *state) peek() byte {
	if s.index < len(s.data) {
		return s.data[s.index]
	}
	return 0
}

// next consumes and returns the next byte, or 0 if at the end of stream
func (s *state) next() byte {
	if s.index < len(s.data) {
		i := s.index
		s.index++
		return s.data[i]
	}
	return 0
}

// ToString serializes sub paths to a path data string using absolute
// commands and the shortest float form that round-trips.
func ToString(groups []*SubPath) string {
	var buf strings.Builder

	formatNumber := func(n float64) string {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	for i, group := range groups {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString("M " + formatNumber(group.X) + " " + formatNumber(group.Y))
		for _, drawTo := range group.DrawTo {
			switch drawTo.Command {
			case LineTo:
				buf.WriteString(" L " + formatNumber(drawTo.X) + " " + formatNumber(drawTo.Y))
			case CurveTo:
				buf.WriteString(" C " +
					formatNumber(drawTo.X1) + " " + formatNumber(drawTo.Y1) + " " +
					formatNumber(drawTo.X2) + " " + formatNumber(drawTo.Y2) + " " +
					formatNumber(drawTo.X) + " " + formatNumber(drawTo.Y))
			case ClosePath:
				buf.WriteString(" Z")
			}
		}
	}

	return buf.String()
}
