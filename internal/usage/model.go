package usage

// DateLayout keys daily counters by local calendar date.
const DateLayout = "2006-01-02"

// DefaultWarnTokens is the daily total above which a warning is logged.
const DefaultWarnTokens = 50000

// Daily is the token total recorded for one date.
type Daily struct {
	Date          string `json:"date"`
	Tokens        int    `json:"tokens"`
	WarnThreshold int    `json:"warn_threshold"`
}
