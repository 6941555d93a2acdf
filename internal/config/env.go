package config

import (
	"os"
	"strconv"
	"strings"
)

const EnvPrefix = "TC_"

// ApplyEnv 用环境变量覆盖 cfg 中的字段，返回是否有任何变量生效。
// 例如：TC_MODEL=gpt4o TC_METRICS=lines,tokens
func ApplyEnv(cfg *Config, prefix string) bool {
	has := false
	setString := func(key string, dst *string) {
		v, ok := os.LookupEnv(prefix + key)
		if !ok {
			return
		}
		has = true
		*dst = strings.TrimSpace(v)
	}
	setList := func(key string, dst *[]string) {
		v, ok := os.LookupEnv(prefix + key)
		if !ok {
			return
		}
		has = true
		*dst = splitCSV(v)
	}

	setString("MODEL", &cfg.Model)
	setList("METRICS", &cfg.Metrics)
	setString("BACKEND", &cfg.Backend)
	setString("ENCODING", &cfg.Encoding)
	setString("LANG", &cfg.Lang)
	if v, ok := os.LookupEnv(prefix + "GLOB"); ok {
		has = true
		// 无法解析的值按关闭处理
		cfg.Glob, _ = strconv.ParseBool(strings.TrimSpace(v))
	}
	return has
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
