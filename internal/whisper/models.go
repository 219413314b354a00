package whisper

// modelSizes lists the faster-whisper presets the engine accepts, smallest
// first.
var modelSizes = []string{
	"tiny",
	"base",
	"small",
	"medium",
	"large-v1",
	"large-v2",
	"large-v3",
}

// KnownModelSize reports whether size names a supported model preset.
func KnownModelSize(size string) bool {
	for _, known := range modelSizes {
		if size == known {
			return true
		}
	}
	return false
}

// ModelSizes returns the supported model presets in ascending size order.
func ModelSizes() []string {
	out := make([]string, len(modelSizes))
	copy(out, modelSizes)
	return out
}
