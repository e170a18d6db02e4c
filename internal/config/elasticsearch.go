package config

// ElasticsearchConfig configures the event search index client.
// An empty URL disables Elasticsearch; listing falls back to SQL search.
type ElasticsearchConfig struct {
	URL        string
	Username   string
	Password   string
	Index      string
	MaxRetries int
}

// Enabled reports whether an Elasticsearch endpoint is configured
func (c ElasticsearchConfig) Enabled() bool {
	return c.URL != ""
}
