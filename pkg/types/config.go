// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the literature fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the maximum number of papers to fetch (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// AIConfig holds shared settings for stages that call a chat-completion API.
type AIConfig struct {
	// BaseURL is the API base (default "https://api.openai.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Temperature is the sampling temperature for generation calls.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxRetries is the number of retry attempts on rate-limited calls.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// AgentConfig holds settings for the generation agents.
type AgentConfig struct {
	AIConfig   `yaml:",inline" mapstructure:",squash"`
	HTTPConfig `yaml:",inline" mapstructure:",squash"`
}

// CitationConfig holds settings for the optional citation-weaving service.
// An empty APIKey disables weaving; the pipeline passes text through unchanged.
type CitationConfig struct {
	AIConfig   `yaml:",inline" mapstructure:",squash"`
	HTTPConfig `yaml:",inline" mapstructure:",squash"`
}

// StoreBackend identifies the persistence backend.
type StoreBackend string

const (
	StoreSQLite   StoreBackend = "sqlite"
	StoreAirtable StoreBackend = "airtable"
	StoreNone     StoreBackend = "none"
)

// StoreConfig holds settings for the record store.
type StoreConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the store: sqlite, airtable, or none.
	Backend StoreBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the SQLite database file (sqlite backend).
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// APIKey authenticates against the Airtable API (airtable backend).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseID is the Airtable base identifier.
	BaseID string `json:"base_id" yaml:"base_id" mapstructure:"base_id"`

	// ReferenceTableID is the Airtable table holding reference papers.
	ReferenceTableID string `json:"reference_table_id" yaml:"reference_table_id" mapstructure:"reference_table_id"`

	// ResearchTableID is the Airtable table holding research records.
	ResearchTableID string `json:"research_table_id" yaml:"research_table_id" mapstructure:"research_table_id"`
}

// PublishConfig holds settings for document publication.
type PublishConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Token authenticates against the GitHub API. Empty disables publishing.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// Owner is the repository owner.
	Owner string `json:"owner" yaml:"owner" mapstructure:"owner"`

	// Repo is the repository name.
	Repo string `json:"repo" yaml:"repo" mapstructure:"repo"`

	// Branch is the branch published URLs point at (default "main").
	Branch string `json:"branch" yaml:"branch" mapstructure:"branch"`
}

// NotifyConfig holds settings for the human-input request channel.
type NotifyConfig struct {
	// Recipient is the address methodology requests are sent to.
	Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty" mapstructure:"recipient"`

	// Credentials enables the channel when non-empty.
	Credentials string `json:"credentials,omitempty" yaml:"credentials,omitempty" mapstructure:"credentials"`
}

// ServerConfig holds settings for the HTTP API surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Mode selects the gin mode: debug or release.
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// PipelineConfig groups all stage configurations for one pipeline.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Agents   AgentConfig    `json:"agents" yaml:"agents" mapstructure:"agents"`
	Citation CitationConfig `json:"citation" yaml:"citation" mapstructure:"citation"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Publish  PublishConfig  `json:"publish" yaml:"publish" mapstructure:"publish"`
	Notify   NotifyConfig   `json:"notify" yaml:"notify" mapstructure:"notify"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`

	// Authors is the fixed author block rendered into every document.
	Authors []Author `json:"authors" yaml:"authors" mapstructure:"authors"`
}
