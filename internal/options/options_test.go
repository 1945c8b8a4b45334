package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type clipConfig struct {
	name  string
	fps   float32
	calls []string
}

type clipOption = Option[*clipConfig]

func withName(name string) clipOption {
	return NoError(func(c *clipConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func withFPS(fps float32) clipOption {
	return New(func(c *clipConfig) error {
		if fps <= 0 {
			return errors.New("fps must be positive")
		}
		c.fps = fps
		c.calls = append(c.calls, "fps")

		return nil
	})
}

func TestApply(t *testing.T) {
	cfg := &clipConfig{}
	require.NoError(t, Apply(cfg, withName("walk"), withFPS(30)))
	require.Equal(t, "walk", cfg.name)
	require.InDelta(t, 30, cfg.fps, 1e-9)
	require.Equal(t, []string{"name", "fps"}, cfg.calls)
}

func TestApply_Empty(t *testing.T) {
	cfg := &clipConfig{name: "idle"}
	require.NoError(t, Apply[*clipConfig](cfg))
	require.Equal(t, "idle", cfg.name)
}

func TestApply_LastWins(t *testing.T) {
	cfg := &clipConfig{}
	require.NoError(t, Apply(cfg, withName("walk"), withName("run")))
	require.Equal(t, "run", cfg.name)
}

func TestApply_StopsAtError(t *testing.T) {
	cfg := &clipConfig{}
	err := Apply(cfg, withName("walk"), withFPS(-1), withName("run"))
	require.EqualError(t, err, "fps must be positive")
	require.Equal(t, "walk", cfg.name)
	require.Equal(t, []string{"name"}, cfg.calls)
}

func TestApply_OptionSlice(t *testing.T) {
	opts := []clipOption{withFPS(24), withName("jump")}

	cfg := &clipConfig{}
	require.NoError(t, Apply(cfg, opts...))
	require.Equal(t, "jump", cfg.name)
	require.InDelta(t, 24, cfg.fps, 1e-9)
}
