package billboard

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

func TestSignTextureDimensionsAndOpacity(t *testing.T) {
	tex := SignTexture("LAP 1", 256, 128)
	require.NotNil(t, tex)
	assert.Equal(t, uint32(256), tex.Width)
	assert.Equal(t, uint32(128), tex.Height)
	require.Len(t, tex.Pixels, 256*128*4)

	// Every pixel is opaque: panel, border, and text all carry full alpha.
	for i := 3; i < len(tex.Pixels); i += 4 {
		require.Equal(t, byte(255), tex.Pixels[i])
	}
}

func TestSignTextureClampsTinyDimensions(t *testing.T) {
	tex := SignTexture("X", 1, 1)
	require.NotNil(t, tex)
	assert.GreaterOrEqual(t, int(tex.Width), 8)
	assert.GreaterOrEqual(t, int(tex.Height), 8)
}

func TestPlaceSignsSpacingAndOffset(t *testing.T) {
	const radius, offset = 30.0, 5.0
	curve := track.NewCircleCurve(radius)
	texts := []string{"START", "QTR", "HALF", "3QTR"}

	signs := PlaceSigns(curve, texts, offset, 100)
	require.Len(t, signs, 4)

	for i, sign := range signs {
		assert.Equal(t, uint64(100+i), sign.ID())
		assert.True(t, sign.Enabled())
		require.NotNil(t, sign.Model())
		assert.NotNil(t, sign.Model().Texture())

		// On a circle the outward side vector points away from the center,
		// so each sign lands radius+offset from the origin.
		x, _, z := sign.Position()
		assert.InDelta(t, radius+offset, math32.Sqrt(x*x+z*z), 1e-2)
	}

	// t=0 on the circle is (0, 0, radius): the first sign sits further out
	// along +Z and faces back toward the centerline.
	x, _, z := signs[0].Position()
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, radius+offset, z, 1e-3)
}

func TestPlaceSignsHandlesMissingInputs(t *testing.T) {
	assert.Nil(t, PlaceSigns(nil, []string{"A"}, 2, 0))
	assert.Nil(t, PlaceSigns(track.NewCircleCurve(10), nil, 2, 0))
}
