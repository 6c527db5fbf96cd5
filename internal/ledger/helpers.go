package ledger

import (
	"encoding/json"
	"fmt"
)

// scoreMetadata encodes the raw score as transaction metadata.
func scoreMetadata(score int64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"score":%d}`, score))
}
