package domain

// ModelEndpoint binds a selector name to the URL that serves it.
type ModelEndpoint struct {
	Name string
	URL  string
}

// ModelRegistry is a read-only mapping from selector to endpoint, built once at
// startup. Lookup order follows the configured order of Models.
type ModelRegistry struct {
	defaultModel string
	models       []ModelEndpoint
}

// NewModelRegistry copies models so later mutation by the caller has no effect.
func NewModelRegistry(defaultModel string, models []ModelEndpoint) *ModelRegistry {
	cp := make([]ModelEndpoint, len(models))
	copy(cp, models)
	return &ModelRegistry{defaultModel: defaultModel, models: cp}
}

func (r *ModelRegistry) Default() string {
	return r.defaultModel
}

// Lookup returns the endpoint registered under name.
func (r *ModelRegistry) Lookup(name string) (ModelEndpoint, bool) {
	for _, m := range r.models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelEndpoint{}, false
}

// Resolve maps a selector to an endpoint, falling back to the default model
// when the selector is empty or unknown. The second return value reports
// whether the fallback was taken.
func (r *ModelRegistry) Resolve(selector string) (ModelEndpoint, bool) {
	if selector != "" {
		if m, ok := r.Lookup(selector); ok {
			return m, false
		}
	}
	m, _ := r.Lookup(r.defaultModel)
	if m.Name == "" {
		m.Name = r.defaultModel
	}
	return m, true
}

// Names lists every known selector. The default is always included.
func (r *ModelRegistry) Names() []string {
	names := make([]string, 0, len(r.models)+1)
	hasDefault := false
	for _, m := range r.models {
		names = append(names, m.Name)
		if m.Name == r.defaultModel {
			hasDefault = true
		}
	}
	if !hasDefault && r.defaultModel != "" {
		names = append([]string{r.defaultModel}, names...)
	}
	return names
}

// ModelList is the read-only view served by GET /models.
type ModelList struct {
	DefaultModel    string
	AvailableModels []string
}
