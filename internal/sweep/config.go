package sweep

// ABOUTME: Reads and edits ~/.tmpsweep/config.yaml. Edits go through a
// ABOUTME: yaml.Node tree so comments and key order survive.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPattern matches the two-digit scratch directory names the sweep
// considers by default.
const DefaultPattern = `^[0-9]{2}$`

// Config holds the settings read from config.yaml. Pointer fields
// distinguish "unset" from an explicit zero value.
type Config struct {
	Root               string  `yaml:"root,omitempty"`
	Threshold          string  `yaml:"threshold,omitempty"`
	ConsiderAccessTime *bool   `yaml:"consider_access_time,omitempty"`
	Pattern            *string `yaml:"pattern,omitempty"`
	Jobs               int     `yaml:"jobs,omitempty"`
}

// configKey describes a settable key: the YAML tag it is stored with and
// how a raw command-line value becomes the stored form.
type configKey struct {
	tag       string
	normalize func(string) (string, error)
}

var configKeys = map[string]configKey{
	"root": {tag: "!!str", normalize: func(v string) (string, error) { return v, nil }},
	"threshold": {tag: "!!str", normalize: func(v string) (string, error) {
		_, err := ParseAge(v)
		return v, err
	}},
	"consider_access_time": {tag: "!!bool", normalize: func(v string) (string, error) {
		b, err := strconv.ParseBool(v)
		return strconv.FormatBool(b), err
	}},
	"pattern": {tag: "!!str", normalize: func(v string) (string, error) {
		_, err := regexp.Compile(v)
		return v, err
	}},
	"jobs": {tag: "!!int", normalize: func(v string) (string, error) {
		n, err := strconv.Atoi(v)
		if err == nil && n < 1 {
			err = fmt.Errorf("must be at least 1")
		}
		return strconv.Itoa(n), err
	}},
}

// ConfigPath returns the absolute path of config.yaml.
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tmpsweep", "config.yaml"), nil
}

// ReadConfigRaw returns the config file contents, or nil if it doesn't exist.
func ReadConfigRaw() ([]byte, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path is ~/.tmpsweep/config.yaml
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config.yaml: %w", err)
	}
	return data, nil
}

// LoadConfig reads config.yaml. A missing file yields an empty Config.
func LoadConfig() (*Config, error) {
	data, err := ReadConfigRaw()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigError("parse config.yaml: %w", err)
	}
	return cfg, nil
}

// Policy builds the staleness policy from the config, applying defaults for
// unset fields.
func (c *Config) Policy() (Policy, error) {
	policy := DefaultPolicy()
	if c.Threshold != "" {
		threshold, err := ParseAge(c.Threshold)
		if err != nil {
			return Policy{}, NewConfigError("threshold: %w", err)
		}
		policy.Threshold = threshold
	}
	if c.ConsiderAccessTime != nil {
		policy.ConsiderAccessTime = *c.ConsiderAccessTime
	}
	return policy, nil
}

// NamePattern compiles the candidate name filter. An explicitly empty
// pattern disables filtering and returns nil.
func (c *Config) NamePattern() (*regexp.Regexp, error) {
	pattern := DefaultPattern
	if c.Pattern != nil {
		pattern = *c.Pattern
	}
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, NewConfigError("pattern: %w", err)
	}
	return re, nil
}

// GetConfigValue returns the value stored under key.
func GetConfigValue(key string) (string, bool, error) {
	data, err := ReadConfigRaw()
	if err != nil || data == nil {
		return "", false, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", false, NewConfigError("parse config.yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return "", false, nil
	}

	node := lookupKey(doc.Content[0], key)
	if node == nil {
		return "", false, nil
	}
	if node.Kind != yaml.ScalarNode {
		out, err := yaml.Marshal(node)
		if err != nil {
			return "", false, fmt.Errorf("marshal %s: %w", key, err)
		}
		return string(bytes.TrimRight(out, "\n")), true, nil
	}
	return node.Value, true, nil
}

// UpdateConfigFields validates and writes the given key/value pairs,
// creating config.yaml if needed.
func UpdateConfigFields(fields map[string]string) error {
	normalized := make(map[string]string, len(fields))
	for key, value := range fields {
		entry, ok := configKeys[key]
		if !ok {
			return NewUsageError("unknown config key %q", key)
		}
		canonical, err := entry.normalize(value)
		if err != nil {
			return NewUsageError("invalid value for %s: %v", key, err)
		}
		normalized[key] = canonical
	}

	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := ReadConfigRaw()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}\n")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return NewConfigError("parse config.yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewConfigError("config.yaml has unexpected structure")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return NewConfigError("config.yaml root is not a mapping")
	}
	root.Style = 0

	for key, value := range normalized {
		setYAMLField(root, key, value, configKeys[key].tag)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal config.yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0600); err != nil {
		return fmt.Errorf("write config.yaml: %w", err)
	}
	return nil
}

// setYAMLField sets key to a scalar value in a yaml.Node mapping,
// appending the key if it is not present yet.
func setYAMLField(mapping *yaml.Node, key, value, tag string) {
	leaf := lookupKey(mapping, key)
	if leaf == nil {
		leaf = &yaml.Node{Kind: yaml.ScalarNode}
		mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, leaf)
	}
	leaf.Kind = yaml.ScalarNode
	leaf.Value = value
	leaf.Tag = tag
	leaf.Style = 0
	leaf.Content = nil
}

// lookupKey returns the value node for key in a mapping, or nil.
func lookupKey(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
