package agent

type ChunkKind string

const (
	ChunkAgent ChunkKind = "agent"
	ChunkTools ChunkKind = "tools"
)

// Chunk is one step of a turn as it happens: either assistant text or the
// output of a tool the assistant asked for.
type Chunk struct {
	Kind    ChunkKind
	Tool    string
	Content string
}
