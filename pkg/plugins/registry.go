package plugins

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/models"
)

type deduplicatorEntry struct {
	descriptor models.PluginDescriptor
	factory    DeduplicatorFactory
}

type validatorEntry struct {
	descriptor models.PluginDescriptor
	factory    ValidatorFactory
}

type reporterEntry struct {
	descriptor models.PluginDescriptor
	factory    ReporterFactory
}

// Registry holds every known plugin, keyed by name within each type.
// Registration is expected at startup but is safe at any time.
type Registry struct {
	logger ectologger.Logger

	mu            sync.RWMutex
	deduplicators map[string]deduplicatorEntry
	validators    map[string]validatorEntry
	reporters     map[string]reporterEntry

	// discovered holds descriptor-only plugins found by Discover. They
	// appear in listings but cannot be resolved into instances.
	discovered []models.PluginDescriptor
}

// NewRegistry creates a registry with the built-in plugins registered.
func NewRegistry(logger ectologger.Logger) *Registry {
	r := &Registry{
		logger:        logger,
		deduplicators: make(map[string]deduplicatorEntry),
		validators:    make(map[string]validatorEntry),
		reporters:     make(map[string]reporterEntry),
	}

	r.RegisterDeduplicator(standardDescriptor(), NewStandardDeduplicator)
	r.RegisterDeduplicator(fuzzyDescriptor(), NewFuzzyDeduplicator)
	r.RegisterValidator(integrityDescriptor(), NewIntegrityValidator)
	r.RegisterReporter(markdownDescriptor(), NewMarkdownReporter)
	r.RegisterReporter(jsonDescriptor(), NewJSONReporter)
	r.RegisterReporter(csvDescriptor(), NewCSVReporter)

	return r
}

// RegisterDeduplicator adds or replaces a deduplicator. Replacing an
// existing name is allowed and logged.
func (r *Registry) RegisterDeduplicator(desc models.PluginDescriptor, factory DeduplicatorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.deduplicators[desc.Name]; exists {
		r.logger.WithField("plugin", desc.Name).Warn("Overwriting registered deduplicator")
	}
	desc.Type = models.PluginTypeDeduplicator
	r.deduplicators[desc.Name] = deduplicatorEntry{descriptor: desc, factory: factory}
}

// RegisterValidator adds or replaces a validator.
func (r *Registry) RegisterValidator(desc models.PluginDescriptor, factory ValidatorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.validators[desc.Name]; exists {
		r.logger.WithField("plugin", desc.Name).Warn("Overwriting registered validator")
	}
	desc.Type = models.PluginTypeValidator
	r.validators[desc.Name] = validatorEntry{descriptor: desc, factory: factory}
}

// RegisterReporter adds or replaces a reporter.
func (r *Registry) RegisterReporter(desc models.PluginDescriptor, factory ReporterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[desc.Name]; exists {
		r.logger.WithField("plugin", desc.Name).Warn("Overwriting registered reporter")
	}
	desc.Type = models.PluginTypeReporter
	r.reporters[desc.Name] = reporterEntry{descriptor: desc, factory: factory}
}

// GetDeduplicator resolves a deduplicator by name and constructs it with
// the given options.
func (r *Registry) GetDeduplicator(name string, options map[string]any) (Deduplicator, error) {
	r.mu.RLock()
	entry, ok := r.deduplicators[name]
	r.mu.RUnlock()

	if !ok {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown deduplicator %q", name)
	}
	return entry.factory(options)
}

// GetValidator resolves a validator by name and constructs it with the
// given options.
func (r *Registry) GetValidator(name string, options map[string]any) (Validator, error) {
	r.mu.RLock()
	entry, ok := r.validators[name]
	r.mu.RUnlock()

	if !ok {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown validator %q", name)
	}
	return entry.factory(options)
}

// GetReporter resolves a reporter by name and constructs it with the given
// options.
func (r *Registry) GetReporter(name string, options map[string]any) (Reporter, error) {
	r.mu.RLock()
	entry, ok := r.reporters[name]
	r.mu.RUnlock()

	if !ok {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown reporter %q", name)
	}
	return entry.factory(options)
}

// ListByType returns the descriptors of every plugin of the given type,
// sorted by name.
func (r *Registry) ListByType(pluginType models.PluginType) []models.PluginDescriptor {
	descriptors := make([]models.PluginDescriptor, 0)
	for _, desc := range r.ListAll() {
		if desc.Type == pluginType {
			descriptors = append(descriptors, desc)
		}
	}
	return descriptors
}

// ListAll returns the descriptors of every known plugin, discovered ones
// included, sorted by type then name.
func (r *Registry) ListAll() []models.PluginDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]models.PluginDescriptor, 0, len(r.deduplicators)+len(r.validators)+len(r.reporters)+len(r.discovered))
	for _, entry := range r.deduplicators {
		descriptors = append(descriptors, entry.descriptor)
	}
	for _, entry := range r.validators {
		descriptors = append(descriptors, entry.descriptor)
	}
	for _, entry := range r.reporters {
		descriptors = append(descriptors, entry.descriptor)
	}
	descriptors = append(descriptors, r.discovered...)

	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].Type != descriptors[j].Type {
			return descriptors[i].Type < descriptors[j].Type
		}
		return descriptors[i].Name < descriptors[j].Name
	})

	return descriptors
}

// Discover scans dir for *.json plugin descriptors and records them so they
// show up in listings. Descriptor-only plugins are never enabled; wiring an
// implementation still requires a Register call. A missing directory is not
// an error.
func (r *Registry) Discover(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.WithField("dir", dir).Debug("Plugin directory does not exist, skipping discovery")
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.WithError(err).WithField("path", path).Warn("Failed to read plugin descriptor")
			continue
		}

		var desc models.PluginDescriptor
		if err := json.Unmarshal(data, &desc); err != nil {
			r.logger.WithError(err).WithField("path", path).Warn("Failed to parse plugin descriptor")
			continue
		}
		if desc.Name == "" || desc.Type == "" {
			r.logger.WithField("path", path).Warn("Plugin descriptor missing name or type")
			continue
		}

		desc.Enabled = false

		r.mu.Lock()
		r.discovered = append(r.discovered, desc)
		r.mu.Unlock()

		r.logger.WithFields(map[string]any{
			"plugin": desc.Name,
			"type":   desc.Type,
		}).Info("Discovered plugin descriptor")
	}

	return nil
}
