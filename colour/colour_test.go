package colour_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/vpgo/engine/colour"
)

func TestInvert(t *testing.T) {
	is := is.New(t)

	is.Equal(colour.Black.Invert(), colour.White)
	is.Equal(colour.White.Invert(), colour.Black)
	is.Equal(colour.None.Invert(), colour.None)
	is.Equal(colour.Neutral.Invert(), colour.Neutral)
}

func TestParse(t *testing.T) {
	is := is.New(t)

	c, ok := colour.Parse("b")
	is.True(ok)
	is.Equal(c, colour.Black)

	c, ok = colour.Parse("white")
	is.True(ok)
	is.Equal(c, colour.White)

	_, ok = colour.Parse("purple")
	is.True(!ok)
}

func TestString(t *testing.T) {
	is := is.New(t)

	is.Equal(colour.Black.String(), "black")
	is.Equal(colour.White.String(), "white")
	is.Equal(colour.None.String(), "none")
	is.Equal(colour.Neutral.String(), "neutral")
}
