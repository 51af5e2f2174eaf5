package gemini

import "testing"

func TestParseMetadataBothSections(t *testing.T) {
	text := "TITLE: Quantum Leaps in Plain English\nDESCRIPTION: Herman and Emma unpack what quantum computing actually changes."
	meta := ParseMetadata(text)
	if meta.Title != "Quantum Leaps in Plain English" {
		t.Errorf("title: %q", meta.Title)
	}
	if meta.Description != "Herman and Emma unpack what quantum computing actually changes." {
		t.Errorf("description: %q", meta.Description)
	}
}

func TestParseMetadataMissingTitle(t *testing.T) {
	meta := ParseMetadata("DESCRIPTION: Just a description.")
	if meta.Title != "" {
		t.Errorf("title should be empty, got %q", meta.Title)
	}
	if meta.Description != "Just a description." {
		t.Errorf("description: %q", meta.Description)
	}
}

func TestParseMetadataMissingDescription(t *testing.T) {
	meta := ParseMetadata("TITLE: Only a title here")
	if meta.Title != "Only a title here" {
		t.Errorf("title: %q", meta.Title)
	}
	if meta.Description != "" {
		t.Errorf("description should be empty, got %q", meta.Description)
	}
}

func TestParseMetadataNoLabels(t *testing.T) {
	meta := ParseMetadata("The model ignored the labels entirely.")
	if meta.Title != "" || meta.Description != "" {
		t.Errorf("both fields should be empty: %+v", meta)
	}
}

func TestParseMetadataSurroundingChatter(t *testing.T) {
	text := "Sure! Here is the metadata you asked for.\n\nTITLE: A Good Episode\n\nDESCRIPTION: Words about the episode.\n\nLet me know if you need anything else."
	meta := ParseMetadata(text)
	if meta.Title != "A Good Episode" {
		t.Errorf("title: %q", meta.Title)
	}
	if meta.Description != "Words about the episode.\n\nLet me know if you need anything else." {
		t.Errorf("description: %q", meta.Description)
	}
}

func TestParseMetadataMultilineDescription(t *testing.T) {
	text := "TITLE: T\nDESCRIPTION: Line one.\nLine two."
	meta := ParseMetadata(text)
	if meta.Description != "Line one.\nLine two." {
		t.Errorf("description: %q", meta.Description)
	}
}
