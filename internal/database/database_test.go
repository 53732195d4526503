package database

import (
	"testing"

	"github.com/nilehomes/landing/internal/config"
)

func TestDialectorFollowsDriver(t *testing.T) {
	cases := []struct {
		yaml string
		want string
	}{
		{"", "mysql"},
		{"database:\n  driver: postgres", "postgres"},
	}
	for _, tc := range cases {
		yaml, want := tc.yaml, tc.want
		cfg, err := config.Parse([]byte(yaml))
		if err != nil {
			t.Fatalf("parse %q: %v", yaml, err)
		}
		d, err := Dialector(cfg)
		if err != nil {
			t.Fatalf("dialector: %v", err)
		}
		if d.Name() != want {
			t.Fatalf("dialector for %q = %s, want %s", yaml, d.Name(), want)
		}
	}

	cfg, _ := config.Parse(nil)
	cfg.Database.Driver = "oracle"
	if _, err := Dialector(cfg); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}
