package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/linode"
)

type Point struct {
	X, Y float64
}

// PhasePortrait2D holds data for a 2D phase space plot.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// PhaseFromSamples builds the (x, v) portrait of a closed-form trajectory.
func PhaseFromSamples(samples []linode.Sample) *PhasePortrait2D {
	portrait := &PhasePortrait2D{XIndex: 0, YIndex: 1, Points: make([]Point, len(samples))}
	for i, s := range samples {
		portrait.Points[i] = Point{X: s.X, Y: s.V}
	}
	return portrait
}

// GeneratePhasePortrait integrates dyn numerically and records the chosen
// pair of state components after every step.
func GeneratePhasePortrait(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	xIdx, yIdx int,
	dt, duration float64,
) *PhasePortrait2D {
	if xIdx >= len(x0) || yIdx >= len(x0) || dt <= 0 {
		return nil
	}

	steps := int(duration/dt + 0.5)
	states, err := dynamo.Integrate(integ, dyn, x0, dt, steps)
	if err != nil && len(states) == 0 {
		return nil
	}

	portrait := &PhasePortrait2D{XIndex: xIdx, YIndex: yIdx, Points: make([]Point, 0, len(states))}
	for _, x := range states[1:] {
		portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return portrait
}

// MaxDeviation is the largest distance between matching points of a and b.
func MaxDeviation(a, b *PhasePortrait2D) (float64, error) {
	if a == nil || b == nil || len(a.Points) != len(b.Points) {
		return 0, ErrMismatch
	}
	worst := 0.0
	for i, p := range a.Points {
		q := b.Points[i]
		worst = math.Max(worst, math.Hypot(p.X-q.X, p.Y-q.Y))
	}
	return worst, nil
}

// CrossingPeriod averages the spacing of upward crossings of level in x(t),
// each located by linear interpolation. It needs at least two crossings.
func CrossingPeriod(samples []linode.Sample, level float64) (float64, error) {
	var crossings []float64
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if prev.X < level && curr.X >= level {
			frac := (level - prev.X) / (curr.X - prev.X)
			crossings = append(crossings, prev.T+frac*(curr.T-prev.T))
		}
	}
	if len(crossings) < 2 {
		return 0, ErrTooFewSamples
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// axes, where visible
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
