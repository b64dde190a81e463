package rule

import (
	"os"

	"github.com/google/cel-go/cel"
	"gopkg.in/yaml.v3"
)

// LoadFromFile reads rules from a YAML file and compiles them.
func LoadFromFile(file string, envProvider func() (*cel.Env, error)) ([]Rule, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return Parse(content, envProvider)
}

// Parse decodes a YAML list of rules and compiles each one in its own environment.
//
// Expected format:
//
//   - name: no-hard
//     when: difficulty != "Hard"
func Parse(content []byte, envProvider func() (*cel.Env, error)) ([]Rule, error) {
	rules := []Rule{}

	err := yaml.Unmarshal(content, &rules)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		env, err := envProvider()
		if err != nil {
			return nil, err
		}

		err = rules[i].Init(env)
		if err != nil {
			return nil, err
		}
	}
	return rules, nil
}
