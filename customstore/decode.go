package customstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go-game-hub/types"
)

// Status tags the outcome of decoding a stored or imported game list.
type Status int

const (
	StatusOK Status = iota
	StatusAbsent
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Decoded is the result of Decode. Games is never nil when Status is StatusOK.
type Decoded struct {
	Games  []types.Game
	Status Status
	Err    error
}

var errNotArray = errors.New("not a JSON array")

// Decode validates raw as a JSON array of games. Anything else, including
// null, objects, scalars and trailing data, is reported as StatusCorrupt.
func Decode(raw []byte) Decoded {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return Decoded{Status: StatusCorrupt, Err: errNotArray}
	}

	var games []types.Game
	if err := json.Unmarshal(trimmed, &games); err != nil {
		return Decoded{Status: StatusCorrupt, Err: err}
	}
	if games == nil {
		games = []types.Game{}
	}
	return Decoded{Games: games, Status: StatusOK}
}
