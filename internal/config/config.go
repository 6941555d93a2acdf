package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config 是配置文件的内容；空字段表示未设置，由命令行或默认值补齐。
type Config struct {
	Model    string   `yaml:"model" toml:"model"`
	Metrics  []string `yaml:"metrics" toml:"metrics"`
	Backend  string   `yaml:"backend" toml:"backend"`
	Encoding string   `yaml:"encoding" toml:"encoding"`
	Lang     string   `yaml:"lang" toml:"lang"`
	// Glob 为 true 时展开参数里的通配符；默认按字面路径处理。
	Glob     bool     `yaml:"glob" toml:"glob"`
}

// Load 读取配置文件。.toml 按 TOML 解析，其余按 YAML；未知字段报错。
func Load(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	expanded, err := expandEnv(string(b))
	if err != nil {
		return cfg, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(expanded, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("parse config %s: unknown field %q", path, undecoded[0].String())
		}
		return cfg, nil
	}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve 找到要用的配置文件：显式路径 > $TC_CONFIG > 用户配置目录下的 tc/config.yaml。
// 前两者由用户指定，文件不存在即报错；只有默认位置不存在时返回空 Config。
// 返回值 source 为实际读取的路径。
func Resolve(explicit string) (cfg Config, source string, err error) {
	if p := strings.TrimSpace(explicit); p != "" {
		cfg, err = Load(p)
		return cfg, p, err
	}
	if p := strings.TrimSpace(os.Getenv(EnvPrefix + "CONFIG")); p != "" {
		cfg, err = Load(p)
		return cfg, p, err
	}
	dir, derr := os.UserConfigDir()
	if derr != nil {
		return Config{}, "", nil
	}
	p := filepath.Join(dir, "tc", "config.yaml")
	if _, serr := os.Stat(p); serr != nil {
		if errors.Is(serr, fs.ErrNotExist) {
			return Config{}, "", nil
		}
		return Config{}, p, fmt.Errorf("stat config %s: %w", p, serr)
	}
	cfg, err = Load(p)
	return cfg, p, err
}

var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func expandEnv(src string) (string, error) {
	var out strings.Builder
	last := 0
	for _, idx := range envExpr.FindAllStringSubmatchIndex(src, -1) {
		out.WriteString(src[last:idx[0]])
		name := src[idx[2]:idx[3]]
		hasDefault := idx[4] >= 0 && idx[5] >= 0
		defVal := ""
		if hasDefault && idx[6] >= 0 && idx[7] >= 0 {
			defVal = src[idx[6]:idx[7]]
		}
		if v, ok := os.LookupEnv(name); ok {
			out.WriteString(v)
		} else if hasDefault {
			out.WriteString(defVal)
		} else {
			return "", fmt.Errorf("config references unset environment variable %s", name)
		}
		last = idx[1]
	}
	out.WriteString(src[last:])
	return out.String(), nil
}
