package mapping

import (
	"sync"

	"github.com/google/uuid"
	random "github.com/mazen160/go-random"

	"github.com/custodia-labs/contentbridge-cli/internal/core/ports/driven"
)

// nanoidAlphabet is the URL-safe alphabet used for nanoid values.
const nanoidAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Ensure the default generator implements the port.
var _ driven.IDGenerator = (*randomIDGenerator)(nil)

// randomIDGenerator is the default IDGenerator, backed by process-wide
// entropy.
type randomIDGenerator struct{}

// UUID returns a random UUID string.
func (randomIDGenerator) UUID() string {
	return uuid.New().String()
}

// NanoID returns a URL-safe random identifier of the given length.
func (randomIDGenerator) NanoID(length int) (string, error) {
	return random.Random(length, nanoidAlphabet, true)
}

var (
	genMu sync.RWMutex
	idGen driven.IDGenerator = randomIDGenerator{}
)

// SetIDGenerator replaces the identifier generator used by the uuid
// and nanoid functions. Intended for tests that need determinism.
func SetIDGenerator(g driven.IDGenerator) {
	genMu.Lock()
	defer genMu.Unlock()
	if g == nil {
		idGen = randomIDGenerator{}
		return
	}
	idGen = g
}

// generator returns the active identifier generator.
func generator() driven.IDGenerator {
	genMu.RLock()
	defer genMu.RUnlock()
	return idGen
}
