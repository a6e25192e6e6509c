package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	SERVER_PORT             int
	DB_POSTGRESQL_DSN       string
	DB_POSTGRESQL_READ_DSN  string
	CACHE_TYPE              string
	CACHE_URL               string
	CACHE_PASSWORD          string
	CACHE_DB                string
	CACHE_TTL_SECONDS       int
	JWT_SECRET              []byte
	ADMIN_API_KEY           string
	ALLOWED_CORS_HOSTS      []string
	AUTO_MIGRATE            bool
	HEALTHCHECK_CRON_MINUTE string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s\n", envKey)
			continue
		}
		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(envValue)
		case []byte:
			v.Field(i).SetBytes([]byte(envValue))
		case int:
			if n, err := strconv.Atoi(envValue); err == nil {
				v.Field(i).SetInt(int64(n))
			}
		case bool:
			if b, err := strconv.ParseBool(envValue); err == nil {
				v.Field(i).SetBool(b)
			}
		case []string:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
