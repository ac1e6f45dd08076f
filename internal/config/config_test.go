package config

import (
	"flag"
	"io"
	"strings"
	"testing"
	"time"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaultsWithKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" || cfg.OpenAI.MaxTokens != 800 || cfg.OpenAI.Temperature != 0.7 {
		t.Errorf("openai defaults = %+v", cfg.OpenAI)
	}
	if cfg.Image.MaxPixels != 40_000_000 {
		t.Errorf("Image.MaxPixels = %d", cfg.Image.MaxPixels)
	}
	if cfg.AIProvider != ProviderOpenAI || cfg.BindAddr != ":8080" {
		t.Errorf("provider=%q addr=%q", cfg.AIProvider, cfg.BindAddr)
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_MAX_TOKENS", "400")
	t.Setenv("SERVER_WRITE_TIMEOUT", "45s")
	t.Setenv("BIND_ADDR", "127.0.0.1:9000")

	cfg, err := Load(newFlagSet(), []string{"-openai-max-tokens", "600", "-debug-mode"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("Model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 600 {
		t.Errorf("flag must override env: MaxTokens = %d", cfg.OpenAI.MaxTokens)
	}
	if cfg.Server.WriteTimeout != 45*time.Second {
		t.Errorf("WriteTimeout = %v", cfg.Server.WriteTimeout)
	}
	if cfg.BindAddr != "127.0.0.1:9000" || !cfg.DebugMode {
		t.Errorf("BindAddr=%q DebugMode=%v", cfg.BindAddr, cfg.DebugMode)
	}
}

func TestLoadStubNeedsNoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AI_PROVIDER", " STUB ")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIProvider != ProviderStub {
		t.Errorf("AIProvider = %q", cfg.AIProvider)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"missing key":     {func(c *Config) { c.OpenAI.APIKey = "" }, "OPENAI_API_KEY"},
		"unknown":         {func(c *Config) { c.AIProvider = "gemini" }, "gemini"},
		"zero tokens":     {func(c *Config) { c.OpenAI.MaxTokens = 0 }, "max tokens"},
		"hot temperature": {func(c *Config) { c.OpenAI.Temperature = 2.5 }, "temperature"},
		"no body limit":   {func(c *Config) { c.MaxBodyBytes = 0 }, "max body bytes"},
		"no model":        {func(c *Config) { c.OpenAI.Model = "" }, "модель"},
		"no pixel cap":    {func(c *Config) { c.Image.MaxPixels = 0 }, "max pixels"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			cfg.OpenAI.APIKey = "sk-test"
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}

	cfg := Defaults()
	cfg.OpenAI.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}
}
