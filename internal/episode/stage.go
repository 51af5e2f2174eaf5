package episode

import "strings"

// Stage is one state in the per-episode pipeline. Stages are entered
// in strict sequence; any failure transitions directly to StageFailed.
type Stage string

const (
	StagePending            Stage = "pending"
	StageDraftingScript     Stage = "drafting_script"
	StageParsing            Stage = "parsing"
	StageSynthesizing       Stage = "synthesizing"
	StageAssemblingDialogue Stage = "assembling_dialogue"
	StageAssemblingEpisode  Stage = "assembling_episode"
	StageDerivingMetadata   Stage = "deriving_metadata"
	StagePersisting         Stage = "persisting"
	StageCompleted          Stage = "completed"
	StageFailed             Stage = "failed"
)

var allStages = []Stage{
	StagePending,
	StageDraftingScript,
	StageParsing,
	StageSynthesizing,
	StageAssemblingDialogue,
	StageAssemblingEpisode,
	StageDerivingMetadata,
	StagePersisting,
	StageCompleted,
	StageFailed,
}

var stageSet = func() map[Stage]struct{} {
	set := make(map[Stage]struct{}, len(allStages))
	for _, stage := range allStages {
		set[stage] = struct{}{}
	}
	return set
}()

// AllStages returns the ordered list of known stages.
func AllStages() []Stage {
	cp := make([]Stage, len(allStages))
	copy(cp, allStages)
	return cp
}

// ParseStage converts a string into a known Stage.
func ParseStage(value string) (Stage, bool) {
	normalized := Stage(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stageSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a stage ends the pipeline.
func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageFailed
}

// IsProcessing reports whether a stage reflects in-flight work.
func (s Stage) IsProcessing() bool {
	return s != StagePending && !s.IsTerminal()
}
