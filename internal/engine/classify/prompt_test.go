package classify

import (
	"strings"
	"testing"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

func TestBuildPromptPositional(t *testing.T) {
	videos := testVideos(3)
	prompt := buildPrompt(videos, "")

	for _, want := range []string{"Video 1:", "Video 2:", "Video 3:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.Contains(prompt, "Assess the following 3 videos:") {
		t.Error("prompt missing the video count line")
	}
	if !strings.Contains(prompt, `"index": 1`) {
		t.Error("prompt missing the output format contract")
	}
}

func TestBuildPromptPlaceholders(t *testing.T) {
	prompt := buildPrompt([]engine.Video{{ID: "bare", Title: "Bare"}}, "")

	for _, want := range []string{
		"Description: no description",
		"Captions: no caption information",
		"Channel: unknown",
		"Duration: unknown (0 seconds)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing placeholder %q", want)
		}
	}
}

func TestBuildPromptOverride(t *testing.T) {
	prompt := buildPrompt(testVideos(1), "CUSTOM INSTRUCTION")

	if !strings.Contains(prompt, "CUSTOM INSTRUCTION") {
		t.Error("override instruction not applied")
	}
	if strings.Contains(prompt, "Educational value: supports learning") {
		t.Error("default instruction should be replaced by the override")
	}
	// The output contract survives overrides: the parser depends on it.
	if !strings.Contains(prompt, "Return JSON only") {
		t.Error("output format must remain with an override")
	}
}
