package snapshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Size(t *testing.T) {
	img, err := Render(Options{Text: "Monday\n", Width: 200, Height: 150, Opacity: 0.8})
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())

	img, err = Render(Options{Text: "Monday\n", Width: 200, Height: 150, Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestRender_InvalidSize(t *testing.T) {
	_, err := Render(Options{Width: 0, Height: 150})
	assert.Error(t, err)
}

func TestRender_Opacity(t *testing.T) {
	img, err := Render(Options{Text: "", Width: 200, Height: 150, Opacity: 0.8})
	require.NoError(t, err)

	// Rounded corner stays transparent
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), a)

	// Empty area inside the card carries the window opacity
	_, _, _, a = img.At(100, 60).RGBA()
	assert.InDelta(t, 0.8*0xffff, float64(a), 0.02*0xffff)
}

func TestRender_DarkDiffers(t *testing.T) {
	light, err := Render(Options{Width: 200, Height: 150})
	require.NoError(t, err)
	dark, err := Render(Options{Width: 200, Height: 150, Dark: true})
	require.NoError(t, err)

	assert.NotEqual(t, light.At(100, 60), dark.At(100, 60))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.png")
	require.NoError(t, Save(path, Options{Text: "Tuesday\n", Width: 200, Height: 150}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	err = Save(filepath.Join(t.TempDir(), "missing", "widget.png"), Options{Width: 10, Height: 10})
	assert.Error(t, err)
}
