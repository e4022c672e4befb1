// File: internal/services/ai/config.go
package ai

import "fmt"

type Config struct {
	// APIKey may be empty at startup; the set-key endpoint can supply it at
	// runtime. BaseURL overrides the default OpenAI endpoint.
	APIKey  string
	BaseURL string

	// Image generation settings.
	ImageModel string
	ImageSize  string
}

func (c *Config) Validate() error {
	if c.ImageModel == "" {
		return fmt.Errorf("image model is required")
	}
	if c.ImageSize == "" {
		return fmt.Errorf("image size is required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ImageModel: "gpt-image-1",
		ImageSize:  "1024x1024",
	}
}
