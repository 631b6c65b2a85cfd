package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &stubFeature{name: "modsettings", enabled: true}
	off := &stubFeature{name: "backup", enabled: false}

	mgr := NewManager()
	mgr.Register(on)
	mgr.Register(off)

	loaded, err := mgr.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"modsettings"}, loaded)
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllError(t *testing.T) {
	boom := errors.New("boom")
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "vfs", enabled: true, err: boom})

	_, err := mgr.LoadAll(fiber.New())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "vfs")
}

func TestManager_Duplicate(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "integrity", enabled: true})
	mgr.Register(&stubFeature{name: "integrity", enabled: true})

	loaded, err := mgr.LoadAll(fiber.New())
	assert.Error(t, err)
	assert.Equal(t, []string{"integrity"}, loaded)
}
