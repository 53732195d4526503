package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DSNValue returns the explicit DSN, or builds one for the configured driver from the discrete fields.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}
	if c.Driver == DBDriverPostgres {
		return c.postgresDSN()
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	if params.Get("charset") == "" {
		params.Set("charset", charset)
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", "true")
	}
	if params.Get("loc") == "" {
		params.Set("loc", loc)
	}

	auth := ""
	user := strings.TrimSpace(c.User)
	if user != "" || c.Password != "" {
		auth = user
		if c.Password != "" {
			auth += ":" + c.Password
		}
		auth += "@"
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+neturl.QueryEscape(params.Get(k)))
	}

	return fmt.Sprintf("%stcp(%s)/%s?%s", auth, net.JoinHostPort(host, strconv.Itoa(port)), name, strings.Join(pairs, "&"))
}

// postgresDSN builds a libpq keyword/value DSN. Params are appended in key order.
func (c DatabaseRuntimeConfig) postgresDSN() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultPostgresPort
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}

	params := map[string]string{
		"host":     host,
		"port":     strconv.Itoa(port),
		"dbname":   name,
		"sslmode":  defaultPostgresSSLMode,
		"TimeZone": defaultDBLoc,
	}
	if user := strings.TrimSpace(c.User); user != "" {
		params["user"] = user
	}
	if c.Password != "" {
		params["password"] = c.Password
	}
	if loc := strings.TrimSpace(c.Loc); loc != "" {
		params["TimeZone"] = loc
	}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params[k] = v
		}
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+quotePostgresValue(params[k]))
	}
	return strings.Join(pairs, " ")
}

func quotePostgresValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ParseDuration accepts Go durations ("12h", "90m"), a day suffix ("7d") or bare seconds ("3600").
func ParseDuration(raw string) (time.Duration, error) {
	s := strings.TrimSpace(strings.ToLower(raw))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n * float64(24*time.Hour)), nil
	}
	return time.ParseDuration(s)
}
