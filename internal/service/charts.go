package service

import (
	"math"
	"strings"
)

func horizontalBar(value, maxAbs float64, width int) string {
	if width <= 0 || maxAbs <= 0 {
		return ""
	}
	bars := int(math.Round(math.Abs(value) / maxAbs * float64(width)))
	if bars == 0 && value != 0 {
		bars = 1
	}
	prefix := ""
	if value < 0 {
		prefix = "-"
	}
	return prefix + strings.Repeat("#", bars)
}

func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	chars := []rune("._-~=*#@")
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if maxV == minV {
		return strings.Repeat(string(chars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - minV) / (maxV - minV) * float64(len(chars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}
