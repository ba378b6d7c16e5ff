package shape

import (
	"fmt"
	"strconv"
	"strings"
)

// Font is a canvas-style font descriptor such as "24px sans-serif".
type Font struct {
	Size   float64
	Family string
}

// MinFontSize is the smallest size a scaled font reaches.
const MinFontSize = 1

// DefaultFont is used when a font string cannot be parsed.
var DefaultFont = Font{Size: 24, Family: "sans-serif"}

// ParseFont reads "<size>px <family>". Extra leading words such as "bold"
// are kept as part of the family.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	for i, f := range fields {
		if !strings.HasSuffix(f, "px") {
			continue
		}
		size, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return Font{}, fmt.Errorf("font %q: bad size: %w", s, err)
		}
		if size <= 0 {
			return Font{}, fmt.Errorf("font %q: size must be positive", s)
		}
		family := strings.Join(append(append([]string{}, fields[:i]...), fields[i+1:]...), " ")
		if family == "" {
			family = DefaultFont.Family
		}
		return Font{Size: size, Family: family}, nil
	}
	return Font{}, fmt.Errorf("font %q: missing px size", s)
}

func (f Font) String() string {
	return strconv.FormatFloat(f.Size, 'f', -1, 64) + "px " + f.Family
}

// Scale multiplies the size by k, never going below MinFontSize.
func (f Font) Scale(k float64) Font {
	f.Size *= k
	if f.Size < MinFontSize {
		f.Size = MinFontSize
	}
	return f
}
