// Package platform memoizes facts about the host platform that shape
// keyboard handling.
package platform

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/dshills/richedit/internal/input/key"
)

// Info describes the host platform.
type Info struct {
	// MacOS is true when shortcuts use Cmd instead of Ctrl.
	MacOS bool
}

// EnvOverride names an environment variable that forces the platform
// ("darwin", "linux", ...). Terminals on a remote host report the remote
// OS while the user's keyboard follows the local one.
const EnvOverride = "RICHEDIT_PLATFORM"

var (
	mu     sync.Mutex
	cached *Info

	// detect is replaced in tests.
	detect = func() Info {
		goos := runtime.GOOS
		if v := strings.TrimSpace(os.Getenv(EnvOverride)); v != "" {
			goos = strings.ToLower(v)
		}
		return Info{MacOS: goos == "darwin" || goos == "macos"}
	}
)

// Get returns the platform info, detecting it on first use.
func Get() Info {
	mu.Lock()
	defer mu.Unlock()
	if cached == nil {
		info := detect()
		cached = &info
	}
	return *cached
}

// Reset forgets the memoized info so the next Get detects again.
func Reset() {
	mu.Lock()
	cached = nil
	mu.Unlock()
}

// CtrlKey returns the modifier used for editor shortcuts.
func CtrlKey() key.Modifier {
	if Get().MacOS {
		return key.ModMeta
	}
	return key.ModCtrl
}
