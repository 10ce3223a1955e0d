package models

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Topic is a free-text search term sent to the YouTube search endpoint
type Topic string

//go:embed topics.yaml
var topicsYAML []byte

type topicFile struct {
	Topics []Topic `yaml:"topics"`
}

var defaultTopics = mustParseTopics(topicsYAML)

// DefaultTopics returns a copy of the fixed topic catalog
func DefaultTopics() []Topic {
	out := make([]Topic, len(defaultTopics))
	copy(out, defaultTopics)
	return out
}

// ParseTopics decodes a topic catalog document
func ParseTopics(data []byte) ([]Topic, error) {
	var file topicFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode topics: %w", err)
	}
	if len(file.Topics) == 0 {
		return nil, fmt.Errorf("topic catalog is empty")
	}
	for i, t := range file.Topics {
		if strings.TrimSpace(string(t)) == "" {
			return nil, fmt.Errorf("topic %d is blank", i)
		}
	}
	return file.Topics, nil
}

func mustParseTopics(data []byte) []Topic {
	topics, err := ParseTopics(data)
	if err != nil {
		panic(err)
	}
	return topics
}
