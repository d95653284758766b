package retrieval

import (
	"fmt"
	"sync"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
)

// RetrieverConstructor builds a Retriever from keyword-style config.
type RetrieverConstructor func(config map[string]any) (iface.Retriever, error)

// RetrieverFactory registers Retriever constructors by retriever_type
// string (spec §4.1), distinct from the two-level AdapterRegistry.
type RetrieverFactory struct {
	mu           sync.RWMutex
	constructors map[string]RetrieverConstructor
}

var (
	globalRetrieverFactory     *RetrieverFactory
	globalRetrieverFactoryOnce sync.Once
)

// GlobalRetrieverFactory returns the process-wide factory instance.
func GlobalRetrieverFactory() *RetrieverFactory {
	globalRetrieverFactoryOnce.Do(func() {
		globalRetrieverFactory = NewRetrieverFactory()
	})
	return globalRetrieverFactory
}

// NewRetrieverFactory constructs an empty factory.
func NewRetrieverFactory() *RetrieverFactory {
	return &RetrieverFactory{constructors: make(map[string]RetrieverConstructor)}
}

// Register installs the constructor for a retriever_type, overwriting any
// previous registration.
func (f *RetrieverFactory) Register(retrieverType string, ctor RetrieverConstructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[retrieverType] = ctor
}

// CreateRetriever instantiates a retriever of the given type, failing with
// KindUnknownType if nothing is registered under that name.
func (f *RetrieverFactory) CreateRetriever(retrieverType string, config map[string]any) (iface.Retriever, error) {
	f.mu.RLock()
	ctor, ok := f.constructors[retrieverType]
	f.mu.RUnlock()
	if !ok {
		return nil, NewErrorMessage("RetrieverFactory.CreateRetriever", KindUnknownType,
			fmt.Sprintf("unknown retriever type %q", retrieverType))
	}
	return ctor(config)
}

// RetrieverTypes lists every registered retriever_type.
func (f *RetrieverFactory) RetrieverTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.constructors))
	for t := range f.constructors {
		out = append(out, t)
	}
	return out
}

// IsRegistered reports whether retrieverType has a constructor.
func (f *RetrieverFactory) IsRegistered(retrieverType string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.constructors[retrieverType]
	return ok
}
