package query

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection chấp nhận chuỗi từ query param, mặc định là asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// collate.Collator không an toàn cho concurrent use nên phải giữ mutex riêng.
var (
	collator   = collate.New(language.English)
	collatorMu sync.Mutex
)

// Compare quyết định thứ tự của hai giá trị đã resolve theo direction.
// Kết quả < 0 nghĩa là a đứng trước b. Chính sách (áp dụng theo thứ tự):
//
//  1. null/NotFound luôn nhỏ nhất, nên null đứng đầu khi asc và đứng cuối
//     khi desc; hai null coi như bằng nhau để giữ stable sort.
//  2. Hai giá trị thời gian so sánh theo instant (độ phân giải millisecond).
//  3. Hai chuỗi so sánh theo locale (phù hợp cho tên người, biển số).
//  4. Còn lại ép về số; nếu một bên không ép được (NaN) thì coi như bằng
//     nhau, giữ nguyên thứ tự đầu vào. Đây là degenerate case, không phải lỗi.
//
// Desc chỉ đảo ngược kết quả của phép so sánh asc.
func Compare(a, b Value, dir Direction) int {
	c := compareAsc(a, b)
	if dir == Desc {
		return -c
	}
	return c
}

func compareAsc(a, b Value) int {
	switch {
	case a.isNull() && b.isNull():
		return 0
	case a.isNull():
		return -1
	case b.isNull():
		return 1
	}

	if a.Kind == KindTime && b.Kind == KindTime {
		am, bm := a.Time.UnixMilli(), b.Time.UnixMilli()
		switch {
		case am < bm:
			return -1
		case am > bm:
			return 1
		default:
			return 0
		}
	}

	if a.Kind == KindString && b.Kind == KindString {
		collatorMu.Lock()
		defer collatorMu.Unlock()
		return collator.CompareString(a.Str, b.Str)
	}

	an, aok := a.asNumber()
	bn, bok := b.asNumber()
	if !aok || !bok {
		return 0
	}
	switch {
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
