package config

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "ONCHAIN_AGENT"

const (
	OpenAIKeyEnv   = "OPENAI_API_KEY"
	CohereKeyEnv   = "COHERE_API_KEY"
	ExplorerKeyEnv = "BASESCAN_API_KEY"
	NetworkIDEnv   = "NETWORK_ID"
	RPCURLEnv      = "RPC_URL"
)

type Manager struct {
	configStore Store
	Config      Config

	// fromEnv records the yaml keys that were set by the environment.
	fromEnv map[string]bool
}

func NewManager(cs Store) *Manager {
	configuration := cs.ReadDefaults()

	userConfig, err := cs.Read()
	if err == nil {
		configuration = replaceByConfigFile(configuration, userConfig)
	}

	m := &Manager{configStore: cs, Config: configuration, fromEnv: map[string]bool{}}
	m.alignNetwork()

	return m
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding the ones already present. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// WithEnvironment overlays ONCHAIN_AGENT_<KEY> variables and the unprefixed
// well-known ones (OPENAI_API_KEY, NETWORK_ID, ...) on top of the config.
func (c *Manager) WithEnvironment(v *viper.Viper) *Manager {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if provider := v.GetString("provider"); provider != "" {
		c.Config.Provider = strings.ToLower(provider)
		c.fromEnv["provider"] = true
	}

	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", c.APIKeyEnvVarName())
	_ = v.BindEnv("explorer_api_key", EnvPrefix+"_EXPLORER_API_KEY", ExplorerKeyEnv)
	_ = v.BindEnv("network_id", EnvPrefix+"_NETWORK_ID", NetworkIDEnv)
	_ = v.BindEnv("rpc_url", EnvPrefix+"_RPC_URL", RPCURLEnv)

	c.Config = c.replaceByEnvironment(v, c.Config)

	if c.Config.Provider == ProviderCohere && c.Config.Model == defaultModel && !c.fromEnv["model"] {
		c.Config.Model = DefaultCohereModel
	}

	c.alignNetwork()
	return c
}

// APIKeyEnvVarName is the unprefixed variable holding the selected provider's key.
func (c *Manager) APIKeyEnvVarName() string {
	return strings.ToUpper(c.Config.Provider) + "_API_KEY"
}

// ResolveAPIKey fills api_key and explorer_api_key from their key files
// when they were not configured directly.
func (c *Manager) ResolveAPIKey() error {
	if c.Config.APIKey == "" && c.Config.APIKeyFile != "" {
		key, err := readSecretFile("api key", c.Config.APIKeyFile)
		if err != nil {
			return err
		}
		c.Config.APIKey = key
	}

	if c.Config.ExplorerAPIKey == "" && c.Config.ExplorerAPIKeyFile != "" {
		key, err := readSecretFile("explorer api key", c.Config.ExplorerAPIKeyFile)
		if err != nil {
			return err
		}
		c.Config.ExplorerAPIKey = key
	}

	return nil
}

// Validate reports the required variables that are missing and the warnings
// worth surfacing about optional ones.
func (c *Manager) Validate() ([]string, error) {
	var (
		warnings []string
		missing  []string
	)

	if c.Config.APIKey == "" {
		missing = append(missing, c.APIKeyEnvVarName())
	}

	if c.Config.Provider != ProviderOpenAI && c.Config.Provider != ProviderCohere {
		return nil, &UnknownProviderError{Provider: c.Config.Provider}
	}

	if len(missing) > 0 {
		return nil, &MissingEnvError{Vars: missing}
	}

	if !c.fromEnv["network_id"] {
		warnings = append(warnings, NetworkIDEnv+" not set, defaulting to "+c.Config.NetworkID)
	}

	if w := networkWarning(c.Config); w != "" {
		warnings = append(warnings, w)
	}

	if c.Config.ExplorerAPIKey == "" {
		warnings = append(warnings, ExplorerKeyEnv+" not set, explorer requests may be throttled")
	}

	return warnings, nil
}

func (c *Manager) ShowConfig() (string, error) {
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (c *Manager) Save() error {
	return c.configStore.Write(c.Config)
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	t := reflect.TypeOf(defaultConfig)
	vDefault := reflect.ValueOf(&defaultConfig).Elem()
	vUser := reflect.ValueOf(userConfig)

	for i := 0; i < t.NumField(); i++ {
		defaultField := vDefault.Field(i)
		userField := vUser.Field(i)

		switch defaultField.Kind() {
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Int, reflect.Int64:
			if userInt := userField.Int(); userInt != 0 {
				defaultField.SetInt(userInt)
			}
		case reflect.Bool:
			defaultField.SetBool(userField.Bool())
		case reflect.Float64:
			if userFloat := userField.Float(); userFloat != 0.0 {
				defaultField.SetFloat(userFloat)
			}
		case reflect.Slice:
			if userField.Len() > 0 {
				defaultField.Set(userField)
			}
		}
	}

	return defaultConfig
}

func (c *Manager) replaceByEnvironment(v *viper.Viper, configuration Config) Config {
	t := reflect.TypeOf(configuration)
	value := reflect.ValueOf(&configuration).Elem()

	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		if key == "provider" || v.GetString(key) == "" {
			continue
		}

		field := value.Field(i)
		set := true

		switch {
		case field.Type() == reflect.TypeOf(configuration.AutoInterval):
			field.SetInt(int64(v.GetDuration(key)))
		case field.Kind() == reflect.String:
			field.SetString(v.GetString(key))
		case field.Kind() == reflect.Int:
			field.SetInt(int64(v.GetInt(key)))
		case field.Kind() == reflect.Bool:
			field.SetBool(v.GetBool(key))
		case field.Kind() == reflect.Float64:
			field.SetFloat(v.GetFloat64(key))
		default:
			set = false
		}

		if set {
			c.fromEnv[key] = true
		}
	}

	return configuration
}
