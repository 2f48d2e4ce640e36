package rest

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate renders t with a .NET style custom format string such as "yyyy-MM-ddT00:00:00Z".
// Supported specifiers: yyyy yy MMMM MMM MM M dddd ddd dd d HH H hh h mm m ss s fff ff f tt zzz zz z K.
// Text in single or double quotes and characters escaped with a backslash are copied verbatim,
// every other character is copied as is.
func FormatDate(t time.Time, layout string) string {
	var b strings.Builder
	runes := []rune(layout)

	for i := 0; i < len(runes); {
		c := runes[i]

		if c == '\\' && i+1 < len(runes) {
			b.WriteRune(runes[i+1])
			i += 2
			continue
		}
		if c == '\'' || c == '"' {
			end := i + 1
			for end < len(runes) && runes[end] != c {
				end++
			}
			b.WriteString(string(runes[i+1 : min(end, len(runes))]))
			i = end + 1
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == c {
			n++
		}

		switch c {
		case 'y':
			if n <= 2 {
				fmt.Fprintf(&b, "%02d", t.Year()%100)
			} else {
				fmt.Fprintf(&b, "%0*d", n, t.Year())
			}
		case 'M':
			switch {
			case n >= 4:
				b.WriteString(t.Month().String())
			case n == 3:
				b.WriteString(t.Month().String()[:3])
			default:
				writeNumber(&b, int(t.Month()), n)
			}
		case 'd':
			switch {
			case n >= 4:
				b.WriteString(t.Weekday().String())
			case n == 3:
				b.WriteString(t.Weekday().String()[:3])
			default:
				writeNumber(&b, t.Day(), n)
			}
		case 'H':
			writeNumber(&b, t.Hour(), n)
		case 'h':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			writeNumber(&b, h, n)
		case 'm':
			writeNumber(&b, t.Minute(), n)
		case 's':
			writeNumber(&b, t.Second(), n)
		case 'f':
			digits := min(n, 9)
			frac := fmt.Sprintf("%09d", t.Nanosecond())
			b.WriteString(frac[:digits])
		case 't':
			ampm := "AM"
			if t.Hour() >= 12 {
				ampm = "PM"
			}
			if n == 1 {
				ampm = ampm[:1]
			}
			b.WriteString(ampm)
		case 'z':
			writeOffset(&b, t, min(n, 3))
		case 'K':
			for k := 0; k < n; k++ {
				if t.Location() == time.UTC {
					b.WriteByte('Z')
				} else {
					writeOffset(&b, t, 3)
				}
			}
		default:
			b.WriteString(strings.Repeat(string(c), n))
		}
		i += n
	}

	return b.String()
}

func writeNumber(b *strings.Builder, v, width int) {
	if width >= 2 {
		fmt.Fprintf(b, "%0*d", width, v)
		return
	}
	fmt.Fprintf(b, "%d", v)
}

// writeOffset renders the UTC offset as +7, +07 or +07:00 for widths 1, 2 and 3
func writeOffset(b *strings.Builder, t time.Time, width int) {
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours, minutes := offset/3600, offset%3600/60

	b.WriteRune(sign)
	switch width {
	case 1:
		fmt.Fprintf(b, "%d", hours)
	case 2:
		fmt.Fprintf(b, "%02d", hours)
	default:
		fmt.Fprintf(b, "%02d:%02d", hours, minutes)
	}
}
