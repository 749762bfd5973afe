package protocol

// Version is the observer wire protocol version.
const Version = "1.0"

const (
	TypeMatchHeader = "MATCH_HEADER"
	TypeRound       = "ROUND"
	TypeMatchFooter = "MATCH_FOOTER"
)

// MatchHeaderMsg opens an observer stream or a match log file.
type MatchHeaderMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	MapName         string `json:"map_name"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Rounds          int    `json:"rounds"`
	Seed            int64  `json:"seed"`
	TeamA           string `json:"team_a"`
	TeamB           string `json:"team_b"`
}

// RoundMsg carries one round's complete signal emission log, in order.
type RoundMsg struct {
	Type    string     `json:"type"`
	Round   int        `json:"round"`
	Signals []Envelope `json:"signals"`
	Digest  string     `json:"digest"`
}

// RawRoundMsg is the decode-side RoundMsg.
type RawRoundMsg struct {
	Type    string        `json:"type"`
	Round   int           `json:"round"`
	Signals []RawEnvelope `json:"signals"`
	Digest  string        `json:"digest"`
}

// MatchFooterMsg closes the stream with the verdict.
type MatchFooterMsg struct {
	Type             string `json:"type"`
	Winner           string `json:"winner"`
	DominationFactor string `json:"domination_factor"`
	Rounds           int    `json:"rounds"`
}
