package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Stream holds the device connection settings for the mqtt playback path.
type Stream struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientId"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topic    string `yaml:"topic"`
	} `yaml:"mqtt"`
	FPS int `yaml:"fps"`
}

func LoadStream(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Error opening config file: %w", err)
	}
	defer f.Close()

	s := &Stream{}
	if err := yaml.NewDecoder(f).Decode(s); err != nil {
		return nil, fmt.Errorf("Error parsing config file: %w", err)
	}
	if s.Mqtt.Topic == "" {
		s.Mqtt.Topic = DefaultMqttTopic
	}
	if s.FPS <= 0 {
		s.FPS = DefaultFPS
	}
	return s, nil
}
