package query

import "time"

// Các field thời gian trên wire (ISO-8601 string hoặc epoch milliseconds).
var temporalKeys = []string{"entryTime", "exitTime", "createdAt", "updatedAt"}

// Các key chứa sub-object cần normalize đệ quy. Backend serialize payment
// của session với key "Payment" (viết hoa) nên phải liệt kê cả hai.
var nestedKeys = []string{"session", "slot", "vehicle", "payment", "Payment", "owner"}

// Normalize trả về bản sao của record với các field thời gian đã parse
// thành time.Time. Field null giữ nguyên null ("không có" khác với "đã
// parse"); giá trị không parse được thì giữ nguyên như nhận về, việc hiển
// thị "N/A" là chuyện của tầng render. Không bao giờ panic.
func Normalize(raw Record) Record {
	if raw == nil {
		return nil
	}

	out := make(Record, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	for _, k := range temporalKeys {
		v, ok := out[k]
		if !ok || v == nil {
			continue
		}
		if t, parsed := parseInstant(v); parsed {
			out[k] = t
		}
	}

	for _, k := range nestedKeys {
		if sub, ok := out[k].(map[string]any); ok {
			out[k] = Normalize(sub)
		}
	}
	return out
}

// NormalizeAll chạy Normalize trên từng record của một collection vừa fetch.
func NormalizeAll(raw []Record) []Record {
	if raw == nil {
		return nil
	}
	out := make([]Record, len(raw))
	for i, rec := range raw {
		out[i] = Normalize(rec)
	}
	return out
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseInstant(v any) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		return tv, true
	case float64:
		// JSON number = epoch milliseconds
		return time.UnixMilli(int64(tv)).UTC(), true
	case string:
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, tv); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
