package search

import (
	"fmt"

	"github.com/kovan-labs/chatdock/internal/domain"
	domsearch "github.com/kovan-labs/chatdock/internal/domain/search"
)

// Repair records a projection mismatch that was degraded to content-only
// message reconstruction. It is a diagnostic, never an error.
type Repair struct {
	ChatID       string
	ContentLen   int
	TimestampLen int
	SenderLen    int
}

// Reassemble reconstructs row-oriented chat records from flattened search
// rows. Pure and stable: the input is not mutated, output order equals input
// order, and the output always has one record per row.
//
// Per row: scalar fields are copied verbatim, the three parallel message
// arrays are zipped index-wise into message objects when their lengths agree,
// and the flattened messages.* keys are stripped so the caller never sees
// both forms at once. A length mismatch does not fail the row: it degrades to
// content-only messages and emits a Repair diagnostic.
func Reassemble(rows []domsearch.Row) ([]domsearch.Record, []Repair) {
	records := make([]domsearch.Record, 0, len(rows))
	var repairs []Repair

	for _, row := range rows {
		content := stringSlice(row[domsearch.FieldMessagesContent])
		timestamps := stringSlice(row[domsearch.FieldMessagesTimestamp])
		senders := stringSlice(row[domsearch.FieldMessagesSender])

		fields := make(map[string]any, len(row))
		for k, v := range row {
			switch k {
			case domsearch.FieldMessagesContent,
				domsearch.FieldMessagesTimestamp,
				domsearch.FieldMessagesSender:
				// stripped; the nested form replaces them
			default:
				fields[k] = v
			}
		}

		var messages []domain.Message
		if len(content) == len(timestamps) && len(timestamps) == len(senders) {
			messages = make([]domain.Message, 0, len(content))
			for i := range content {
				messages = append(messages, domain.Message{
					Content:   content[i],
					Timestamp: timestamps[i],
					Sender:    senders[i],
				})
			}
		} else {
			repairs = append(repairs, Repair{
				ChatID:       row.StringField("chat_id"),
				ContentLen:   len(content),
				TimestampLen: len(timestamps),
				SenderLen:    len(senders),
			})
			messages = make([]domain.Message, 0, len(content))
			for _, c := range content {
				messages = append(messages, domain.Message{Content: c})
			}
		}

		records = append(records, domsearch.Record{Fields: fields, Messages: messages})
	}

	return records, repairs
}

// FilterByOwner retains the records whose user_id equals userID, by exact
// string equality. Order-preserving, no side effects. Needed because the
// index query cannot express a per-user scope in the observed call path.
func FilterByOwner(records []domsearch.Record, userID string) []domsearch.Record {
	owned := make([]domsearch.Record, 0, len(records))
	for _, rec := range records {
		if rec.UserID() == userID {
			owned = append(owned, rec)
		}
	}
	return owned
}

// stringSlice coerces a projected value into a string sequence. An absent
// key yields an empty sequence; a bare scalar counts as a one-element
// sequence (some index backends collapse single-element array projections).
func stringSlice(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, stringOf(e))
		}
		return out
	default:
		return []string{stringOf(t)}
	}
}

func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
