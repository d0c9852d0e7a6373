package subtle

// FormatKey renders key as a zero-padded KeyWidth-digit decimal string.
// Keys outside [0, 999] are never produced by a valid Table.
func FormatKey(key int) string {
	var buf [KeyWidth]byte
	for i := KeyWidth - 1; i >= 0; i-- {
		buf[i] = byte('0' + key%10)
		key /= 10
	}
	return string(buf[:])
}

// ParseKey parses a rendered key. It accepts exactly KeyWidth ASCII digits.
func ParseKey(group string) (int, bool) {
	if len(group) != KeyWidth {
		return 0, false
	}
	key := 0
	for i := 0; i < len(group); i++ {
		c := group[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		key = key*10 + int(c-'0')
	}
	return key, true
}
