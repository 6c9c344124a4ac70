package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadshapeSuffix names the synthetic loadshape created for an element.
const LoadshapeSuffix = "_profile"

// ElementName strips the class prefix from an object name ("Load.l1" -> "l1").
func ElementName(objectName string) string {
	if i := strings.LastIndex(objectName, "."); i >= 0 {
		return objectName[i+1:]
	}
	return objectName
}

// LoadshapeName returns the name of the synthetic loadshape of an element.
func LoadshapeName(element string) string {
	return element + LoadshapeSuffix
}

// Hours returns the time axis of an n-point profile sampled every step hours.
func Hours(n int, step float64) []float64 {
	hours := make([]float64, n)
	for i := range hours {
		hours[i] = step * float64(i)
	}
	return hours
}

// LoadshapeCommands renders the two engine commands that create the synthetic
// loadshape of objectName and reassign the element's yearly shape to it.
//
// npts must appear before any array property; some engine versions fault on
// the simulation run otherwise.
func LoadshapeCommands(objectName string, values []float64, step float64) []string {
	name := LoadshapeName(ElementName(objectName))
	return []string{
		fmt.Sprintf("new Loadshape.%s npts=%d hour=%s mult=%s",
			name, len(values), formatArray(Hours(len(values), step)), formatArray(values)),
		fmt.Sprintf("%s.yearly=%s", objectName, name),
	}
}

func formatArray(values []float64) string {
	var b strings.Builder
	b.Grow(len(values) * 8)
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}
