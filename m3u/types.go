package m3u

// ChannelRecord is one EXTINF directive paired with its stream URI.
type ChannelRecord struct {
	// Group is the source group-title attribute, empty when absent.
	Group string `json:"group"`
	Name  string `json:"name"`
	URI   string `json:"uri"`
}

// Entry is a channel as it is written to an output playlist.
type Entry struct {
	Label string
	Name  string
	URI   string
}
