package audio

import _ "embed"

// defaultChime is the bundled clip played when no audio_file is configured.
//
//go:embed assets/chime.wav
var defaultChime []byte

// DefaultClipName identifies the embedded clip in logs and the check command.
const DefaultClipName = "builtin:chime"
