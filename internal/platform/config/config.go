package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second

	defaultArticlesCollection = "blogs"
	defaultProjectsCollection = "Projects"
	defaultRelatedLimit       = 3
	defaultExcerptLength      = 300
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Firebase  FirebaseConfig
	Firestore FirestoreConfig
	PubSub    PubSubConfig
	Content   ContentConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// FirebaseConfig stores Firebase project settings.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

// FirestoreConfig stores database parameters.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
}

// PubSubConfig names the optional analytics topic for view events.
type PubSubConfig struct {
	ProjectID string
	ViewTopic string
}

// ContentConfig controls collection names and presentation defaults.
type ContentConfig struct {
	ArticlesCollection string
	ProjectsCollection string
	RelatedLimit       int
	ExcerptLength      int
}

// Option customises configuration loading.
type Option func(*loadOptions)

type loadOptions struct {
	envFile string
	lookup  func(string) (string, bool)
}

// WithEnvFile overrides the env file consulted before process environment variables.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		if strings.TrimSpace(path) != "" {
			o.envFile = path
		}
	}
}

// WithLookup overrides the environment lookup function, mainly for tests.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if lookup != nil {
			o.lookup = lookup
		}
	}
}

// Load reads configuration from the environment, applying defaults and validation.
func Load(opts ...Option) (Config, error) {
	options := loadOptions{
		envFile: defaultEnvFile,
		lookup:  os.LookupEnv,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	fileValues, err := readEnvFile(options.envFile)
	if err != nil {
		return Config{}, err
	}

	get := func(key string) string {
		if value, ok := options.lookup(key); ok {
			return strings.TrimSpace(value)
		}
		if value, ok := fileValues[key]; ok {
			return strings.TrimSpace(value)
		}
		return ""
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         withDefault(get("QONUNIY_SERVER_PORT"), defaultPort),
			ReadTimeout:  durationOrDefault(get("QONUNIY_SERVER_READ_TIMEOUT"), defaultReadTimeout),
			WriteTimeout: durationOrDefault(get("QONUNIY_SERVER_WRITE_TIMEOUT"), defaultWriteTimeout),
			IdleTimeout:  durationOrDefault(get("QONUNIY_SERVER_IDLE_TIMEOUT"), defaultIdleTimeout),
		},
		Firebase: FirebaseConfig{
			ProjectID:       get("QONUNIY_FIREBASE_PROJECT_ID"),
			CredentialsFile: get("QONUNIY_FIREBASE_CREDENTIALS_FILE"),
		},
		Firestore: FirestoreConfig{
			ProjectID:    get("QONUNIY_FIRESTORE_PROJECT_ID"),
			EmulatorHost: get("QONUNIY_FIRESTORE_EMULATOR_HOST"),
		},
		PubSub: PubSubConfig{
			ProjectID: get("QONUNIY_PUBSUB_PROJECT_ID"),
			ViewTopic: get("QONUNIY_PUBSUB_VIEW_TOPIC"),
		},
		Content: ContentConfig{
			ArticlesCollection: withDefault(get("QONUNIY_CONTENT_ARTICLES_COLLECTION"), defaultArticlesCollection),
			ProjectsCollection: withDefault(get("QONUNIY_CONTENT_PROJECTS_COLLECTION"), defaultProjectsCollection),
			RelatedLimit:       intOrDefault(get("QONUNIY_CONTENT_RELATED_LIMIT"), defaultRelatedLimit),
			ExcerptLength:      intOrDefault(get("QONUNIY_CONTENT_EXCERPT_LENGTH"), defaultExcerptLength),
		},
	}

	if cfg.Firestore.ProjectID == "" {
		cfg.Firestore.ProjectID = cfg.Firebase.ProjectID
	}
	if cfg.PubSub.ProjectID == "" {
		cfg.PubSub.ProjectID = cfg.Firebase.ProjectID
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Port) == "" {
		problems = append(problems, "server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("server port %q is not numeric", c.Server.Port))
	}
	if c.Content.RelatedLimit < 0 {
		problems = append(problems, "related limit must not be negative")
	}
	if c.Content.ExcerptLength <= 0 {
		problems = append(problems, "excerpt length must be positive")
	}
	if c.PubSub.ViewTopic != "" && c.PubSub.ProjectID == "" {
		problems = append(problems, "pubsub view topic requires a project id")
	}
	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func durationOrDefault(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func intOrDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// readEnvFile parses KEY=VALUE lines, ignoring comments and blank lines. A missing file is not an error.
func readEnvFile(path string) (map[string]string, error) {
	values := make(map[string]string)
	if strings.TrimSpace(path) == "" {
		return values, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("config: open env file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)
		if key != "" {
			values[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return values, nil
}
