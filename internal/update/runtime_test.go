package update

import "testing"

func TestRuntimeConfigFromEnv(t *testing.T) {
	base := DefaultRuntimeConfig()
	if !base.DesktopNotifications || base.SyncOnStart {
		t.Fatalf("unexpected defaults: %+v", base)
	}

	t.Setenv("CANVAULT_DESKTOP_NOTIFICATIONS", "off")
	t.Setenv("CANVAULT_SYNC_ON_START", "yes")
	cfg := RuntimeConfigFromEnv(base)
	if cfg.DesktopNotifications {
		t.Fatalf("expected notifications disabled")
	}
	if !cfg.SyncOnStart {
		t.Fatalf("expected sync on start enabled")
	}
}

func TestRuntimeConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("CANVAULT_DESKTOP_NOTIFICATIONS", "maybe")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if !cfg.DesktopNotifications {
		t.Fatalf("expected default kept for unparseable value")
	}
}
