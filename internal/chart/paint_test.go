package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurine/docgen/internal/canvas"
)

func TestPaintPie(t *testing.T) {
	c := canvas.New(200, 200, 1)
	defer c.Close()

	ch, err := Pie(Series{{Name: "a", Value: 50, Color: "#ff0000"}, {Name: "b", Value: 50, Color: "#0000ff"}}, 200, DefaultOptions())
	require.NoError(t, err)
	Paint(c, canvas.Rect{W: 200, H: 200}, ch)

	img := c.Image()
	right := img.RGBAAt(155, 100)
	assert.Equal(t, uint8(0xff), right.R)
	assert.Equal(t, uint8(0), right.B)

	left := img.RGBAAt(45, 100)
	assert.Equal(t, uint8(0xff), left.B)
	assert.Equal(t, uint8(0), left.R)

	// The donut hole and the corners stay empty.
	assert.Equal(t, uint8(0), img.RGBAAt(100, 70).A)
	assert.Equal(t, uint8(0), img.RGBAAt(2, 2).A)
}

func TestPaintFullRing(t *testing.T) {
	c := canvas.New(200, 200, 1)
	defer c.Close()

	ch, err := Pie(Series{{Name: "all", Value: 100, Color: "#00ff00"}}, 200, DefaultOptions())
	require.NoError(t, err)
	Paint(c, canvas.Rect{W: 200, H: 200}, ch)

	img := c.Image()
	for _, p := range [][2]int{{155, 100}, {45, 100}, {100, 45}, {100, 155}} {
		assert.Equal(t, uint8(0xff), img.RGBAAt(p[0], p[1]).G, "ring pixel %v", p)
	}
}

func TestPaintBarStretches(t *testing.T) {
	c := canvas.New(400, 200, 1)
	defer c.Close()

	ch, err := Bar(Series{{Name: "x", Value: 1}}, 200, DefaultOptions())
	require.NoError(t, err)
	Paint(c, canvas.Rect{W: 400, H: 200}, ch)

	img := c.Image()
	inside := img.RGBAAt(200, 100)
	assert.Equal(t, canvas.ParseHex("#ec4899"), inside)
	// Inset is 10% of the 400px slot.
	assert.Equal(t, uint8(0), img.RGBAAt(20, 100).A)
	assert.Equal(t, uint8(0), img.RGBAAt(200, 5).A)
}

func TestPaintIgnoresDegenerateInput(t *testing.T) {
	c := canvas.New(10, 10, 1)
	defer c.Close()

	Paint(c, canvas.Rect{W: 10, H: 10}, nil)
	Paint(c, canvas.Rect{}, &Chart{Kind: KindBar, Width: 100, Height: 100})
	assert.Equal(t, uint8(0), c.Image().RGBAAt(5, 5).A)
}
