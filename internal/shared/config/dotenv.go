package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment are not overridden.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: skip env file %s: %v", path, err)
		}
	}
}

// credentials mirrors the optional credentials file. JSON files parse as YAML.
type credentials struct {
	SproutAPIKey string `yaml:"sprout_api_key"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
}

var defaultCredentialFiles = []string{"config.json", "config.yaml", "config.yml"}

// loadCredentialsFile reads the first existing credentials file. A missing file is not an error.
func loadCredentialsFile(path string) credentials {
	candidates := defaultCredentialFiles
	if strings.TrimSpace(path) != "" {
		candidates = []string{path}
	}
	for _, candidate := range candidates {
		creds, err := readCredentials(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("config: read credentials %s: %v", candidate, err)
			}
			continue
		}
		return creds
	}
	return credentials{}
}

func readCredentials(path string) (credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return credentials{}, err
	}
	var creds credentials
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return credentials{}, err
	}
	return creds, nil
}
