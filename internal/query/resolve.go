package query

import "strings"

// Resolve đi theo dotted path ("vehicle.plateNumber") trên một record.
// Nếu bất kỳ object trung gian nào vắng mặt hoặc null thì trả về NotFound
// thay vì panic. Hàm thuần túy, không side effect.
func Resolve(rec Record, path string) Value {
	if rec == nil || path == "" {
		return NotFound
	}

	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return NotFound
		}
		cur, ok = obj[part]
		if !ok {
			return NotFound
		}
	}
	return valueOf(cur)
}
