package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updates := make(chan AppConfig, 1)
	go func() {
		_ = Watcher{Path: path, Cooldown: 10 * time.Millisecond}.Start(ctx, func(cfg AppConfig) {
			select {
			case updates <- cfg:
			default:
			}
		})
	}()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	updated := sampleYAML + "\nmetricsAddr: \":9200\"\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case cfg := <-updates:
		require.Equal(t, ":9200", cfg.MetricsAddr)
	case <-ctx.Done():
		t.Fatal("no reload observed")
	}
}

func TestWatcherIgnoresInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	updates := make(chan AppConfig, 1)
	go func() {
		_ = Watcher{Path: path, Cooldown: 10 * time.Millisecond}.Start(ctx, func(cfg AppConfig) {
			select {
			case updates <- cfg:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("strategy: [broken"), 0644))

	select {
	case <-updates:
		t.Fatal("invalid config must not be delivered")
	case <-ctx.Done():
	}
}
