package publish

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hangarhub/hangarctl/internal/config"
)

// ErrUnknownPlatform is returned when no factory is registered for a name
var ErrUnknownPlatform = errors.New("unknown publishing platform")

// Factory builds a platform from the loaded configuration
type Factory func(cfg *config.Config, logger *log.Logger) (Platform, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register adds a platform factory under a name. Concrete platforms register
// themselves in init, so new targets plug in without touching dispatch code.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// New constructs the named platform
func New(name string, cfg *config.Config, logger *log.Logger) (Platform, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, name)
	}
	return factory(cfg, logger)
}

// Names returns the registered platform names, sorted
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
