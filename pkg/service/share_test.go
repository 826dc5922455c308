package service

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
)

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var copied string
	prevWrite, prevUnsupported := writeClipboard, clipboard.Unsupported
	writeClipboard = func(text string) error {
		if err != nil {
			return err
		}
		copied = text
		return nil
	}
	clipboard.Unsupported = false
	t.Cleanup(func() {
		writeClipboard = prevWrite
		clipboard.Unsupported = prevUnsupported
	})
	return &copied
}

func TestShareService_Link(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	app.ShareBase = "https://resep.example/"

	s := NewShareService(app)

	assert.Equal(t, "https://resep.example/#/recipe/42/minuman", s.Link("42", "minuman"))
	assert.Equal(t, "https://resep.example/#/recipe/42/makanan", s.Link("42", ""))
}

func TestShareService_ShareCopies(t *testing.T) {
	app, _, _, buf := newTestApp(t)
	app.ShareBase = "https://resep.example/"
	copied := stubClipboard(t, nil)

	link := NewShareService(app).Share("7", "makanan", true)

	assert.Equal(t, link, *copied)
	assert.Contains(t, buf.String(), link)
	assert.Contains(t, buf.String(), "berhasil disalin")
}

func TestShareService_ClipboardFailureIsNotFatal(t *testing.T) {
	app, _, _, buf := newTestApp(t)
	stubClipboard(t, errors.New("no display"))

	link := NewShareService(app).Share("7", "makanan", true)

	assert.NotEmpty(t, link)
	assert.Contains(t, buf.String(), "Could not copy link")
}

func TestShareService_NoCopy(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	copied := stubClipboard(t, nil)

	NewShareService(app).Share("7", "makanan", false)

	assert.Empty(t, *copied)
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, "s"},
		{1, ""},
		{2, "s"},
		{100, "s"},
	}

	for _, tt := range tests {
		result := pluralize(tt.count)
		if result != tt.expected {
			t.Errorf("pluralize(%d): got %q, want %q", tt.count, result, tt.expected)
		}
	}
}
