package platform

import (
	"testing"

	"github.com/dshills/richedit/internal/input/key"
)

func withDetector(t *testing.T, fn func() Info) *int {
	t.Helper()
	calls := new(int)
	orig := detect
	detect = func() Info {
		*calls++
		return fn()
	}
	Reset()
	t.Cleanup(func() {
		detect = orig
		Reset()
	})
	return calls
}

func TestGetMemoizes(t *testing.T) {
	calls := withDetector(t, func() Info { return Info{MacOS: true} })

	for i := 0; i < 3; i++ {
		if !Get().MacOS {
			t.Fatal("MacOS = false, want true")
		}
	}
	if *calls != 1 {
		t.Errorf("detect calls = %d, want 1", *calls)
	}

	Reset()
	Get()
	if *calls != 2 {
		t.Errorf("detect calls after Reset = %d, want 2", *calls)
	}
}

func TestCtrlKey(t *testing.T) {
	mac := true
	withDetector(t, func() Info { return Info{MacOS: mac} })

	if got := CtrlKey(); got != key.ModMeta {
		t.Errorf("CtrlKey on mac = %v, want Meta", got)
	}
	mac = false
	Reset()
	if got := CtrlKey(); got != key.ModCtrl {
		t.Errorf("CtrlKey elsewhere = %v, want Ctrl", got)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvOverride, "Darwin")
	Reset()
	t.Cleanup(Reset)
	if !Get().MacOS {
		t.Error("override to darwin not honored")
	}

	t.Setenv(EnvOverride, "linux")
	Reset()
	if Get().MacOS {
		t.Error("override to linux not honored")
	}
}
