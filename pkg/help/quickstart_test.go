package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestQuickstartIsValidYAML(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(QuickstartYAML), &doc); err != nil {
		t.Fatalf("quickstart is not valid YAML: %v", err)
	}
	for _, key := range []string{"pipeline", "commands", "errors", "exit_codes"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("quickstart is missing %q", key)
		}
	}
}
