package config

import (
	"os"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/poet/poet.toml
	SourceUser        ConfigSource = "user"        // ~/.poet/poet.toml
	SourceProject     ConfigSource = "project"     // nearest poet.toml
	SourceEnvironment ConfigSource = "environment" // POET_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource `json:"source"`
	Path   string       `json:"path,omitempty"`
}

// SettingInfo is one effective setting with its origin.
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// Sources records, per dotted key, the file that last set it.
var Sources = map[string]SourceInfo{}

// Settings lists every effective setting, sorted by key, with its source.
func Settings() []SettingInfo {
	v := GetViper()

	mu.Lock()
	defer mu.Unlock()
	keys := v.AllKeys()
	sort.Strings(keys)

	out := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := Sources[key]; ok {
			info = si
		}
		envKey := "POET_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}
		out = append(out, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return out
}
